package services

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/storage"
	"github.com/prepwise/prepwise_api/utils"
	"github.com/rs/zerolog/log"
)

// Upload is a validated PDF waiting to be stored.
type Upload struct {
	FileName string
	Content  io.Reader
}

type CreateNoteInput struct {
	Title   string
	Subject string
	Unit    string
	File    *Upload
}

type NoteUploader struct {
	ID             uuid.UUID `json:"_id"`
	EmployeeName   string    `json:"employeeName"`
	SubjectDealing string    `json:"subjectDealing"`
	Section        string    `json:"section"`
}

type NoteView struct {
	models.Note
	FullFileURL string        `json:"fullFileUrl"`
	Uploader    *NoteUploader `json:"uploadedBy,omitempty"`
}

type NoteQuery struct {
	Subject string
	Unit    int
}

type NoteService struct {
	notes    repository.NoteRepository
	teachers repository.TeacherRepository
	files    storage.FileStore
	baseURL  string
	now      func() time.Time
}

func NewNoteService(repos repository.Repositories, files storage.FileStore, baseURL string) *NoteService {
	return &NoteService{
		notes:    repos.Notes,
		teachers: repos.Teachers,
		files:    files,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

func (s *NoteService) view(note models.Note) NoteView {
	v := NoteView{Note: note, FullFileURL: note.FullFileURL(s.baseURL)}
	if note.UploadedBy != nil {
		v.Uploader = &NoteUploader{}
		if err := copier.Copy(v.Uploader, note.UploadedBy); err != nil {
			log.Warn().Err(err).Msg("copy note uploader")
			v.Uploader = nil
		}
	}
	return v
}

func (s *NoteService) Create(ctx context.Context, teacher *models.Teacher, input CreateNoteInput) (*NoteView, error) {
	if input.File == nil {
		return nil, BadRequest("Please upload a PDF file")
	}
	title := strings.TrimSpace(input.Title)
	subject := strings.TrimSpace(input.Subject)
	unitRaw := strings.TrimSpace(input.Unit)
	if title == "" || subject == "" || unitRaw == "" {
		return nil, BadRequest("Title, subject, and unit are required")
	}

	var messages []string
	if len(title) > 200 {
		messages = append(messages, "Title cannot exceed 200 characters")
	}
	unit, err := parseUnit(unitRaw)
	if err != nil {
		messages = append(messages, "Unit must be between 1 and 5")
	}
	if len(messages) > 0 {
		return nil, BadRequest(strings.Join(messages, ", "))
	}

	fileURL, err := s.files.Save(ctx, utils.SubjectFolder(subject), utils.UploadFileName(input.File.FileName, s.now()), input.File.Content)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:        title,
		Subject:      subject,
		Regulation:   models.PinnedRegulation,
		Year:         models.PinnedYear,
		Semester:     models.PinnedSemester,
		Unit:         unit,
		FileURL:      fileURL,
		UploadedByID: teacher.ID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		if rmErr := s.files.Remove(ctx, fileURL); rmErr != nil {
			log.Warn().Err(rmErr).Str("file", fileURL).Msg("remove orphaned upload")
		}
		return nil, err
	}
	note.UploadedBy = teacher

	log.Info().Str("note_id", note.ID.String()).Str("teacher_id", teacher.ID.String()).Msg("note uploaded")
	v := s.view(*note)
	return &v, nil
}

func parseUnit(raw string) (int, error) {
	unit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if unit < 1 || unit > 5 {
		return 0, errors.New("unit out of range")
	}
	return unit, nil
}

// List returns the notes visible to principal: a student sees uploads by the
// teachers of their section for their batch, a teacher sees their own.
func (s *NoteService) List(ctx context.Context, principal models.Principal, query NoteQuery) ([]NoteView, error) {
	filter := repository.NoteFilter{Subject: strings.TrimSpace(query.Subject), Unit: query.Unit}

	switch p := principal.(type) {
	case *models.Student:
		teacherIDs, err := s.teachers.ListIDsBySection(ctx, p.Section)
		if err != nil {
			return nil, err
		}
		if teacherIDs == nil {
			teacherIDs = []uuid.UUID{}
		}
		batch := p.Batch()
		filter.UploadedBy = teacherIDs
		filter.Batch = &batch
	case *models.Teacher:
		filter.UploadedBy = []uuid.UUID{p.ID}
	default:
		return nil, Forbidden("Unauthorized access")
	}

	notes, err := s.notes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, s.view(note))
	}
	return views, nil
}

func (s *NoteService) Delete(ctx context.Context, teacher *models.Teacher, id uuid.UUID) error {
	note, err := s.notes.FindOwned(ctx, id, teacher.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Note not found or unauthorized")
		}
		return err
	}
	if err := s.notes.Delete(ctx, note.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Note not found or unauthorized")
		}
		return err
	}

	if err := s.files.Remove(ctx, note.FileURL); err != nil {
		log.Warn().Err(err).Str("note_id", note.ID.String()).Str("file", note.FileURL).Msg("remove note file")
	}
	log.Info().Str("note_id", note.ID.String()).Msg("note deleted")
	return nil
}
