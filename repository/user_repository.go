package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"gorm.io/gorm"
)

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return translate(r.db.WithContext(ctx).Create(teacher).Error)
}

func (r *teacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (r *teacherRepository) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&teacher).Error; err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (r *teacherRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&teacher).Error; err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}

func (r *teacherRepository) ListIDsBySection(ctx context.Context, section string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.WithContext(ctx).Model(&models.Teacher{}).Where("section = ?", section).Pluck("id", &ids).Error
	return ids, translate(err)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return translate(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (r *studentRepository) FindByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("roll_no = ?", rollNo).First(&student).Error; err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})
	if filter.Section != "" {
		query = query.Where("section = ?", filter.Section)
	}
	if filter.Batch != nil {
		query = query.Where("regulation = ? AND year = ? AND semester = ?",
			filter.Batch.Regulation, filter.Batch.Year, filter.Batch.Semester)
	}

	var students []models.Student
	err := query.Order("roll_no ASC").Find(&students).Error
	return students, translate(err)
}
