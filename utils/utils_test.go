package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 3, Round(2.5))
	assert.Equal(t, 2, Round(2.49))
	assert.Equal(t, 67, Round(200.0/3))
	assert.Equal(t, -2, Round(-2.5))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"number", `{"v":2}`, 2, false},
		{"string", `{"v":"3"}`, 3, false},
		{"empty string", `{"v":""}`, 0, false},
		{"null", `{"v":null}`, 0, false},
		{"missing", `{}`, 0, false},
		{"garbage", `{"v":"two"}`, 0, true},
		{"whole float", `{"v":4.0}`, 4, false},
		{"fraction", `{"v":1.7}`, 0, true},
		{"fractional string", `{"v":"1.7"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				V FlexInt `json:"v"`
			}
			err := json.Unmarshal([]byte(tt.input), &payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.V.Int())
		})
	}
}

func TestSubjectFolder(t *testing.T) {
	assert.Equal(t, "Operating System", SubjectFolder("Operating System"))
	assert.Equal(t, "Design and Analysis of Algorithm", SubjectFolder("Design and Analysis of Algorithm"))
	assert.Equal(t, "CS101", SubjectFolder("C/S:1.0/1"))
	assert.Equal(t, "General", SubjectFolder("../"))
	assert.Equal(t, "General", SubjectFolder(""))
}

func TestUploadFileName(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123-unit_1_notes.pdf", UploadFileName("unit 1  notes.pdf", at))
}

func TestFlexTime(t *testing.T) {
	var payload struct {
		Start FlexTime `json:"start"`
		End   FlexTime `json:"end"`
		None  FlexTime `json:"none"`
	}
	err := json.Unmarshal([]byte(`{"start":"2025-03-01T09:30","end":"2025-03-01T10:00:00Z","none":""}`), &payload)
	require.NoError(t, err)

	require.NotNil(t, payload.Start.Ptr())
	assert.True(t, payload.Start.Ptr().Equal(time.Date(2025, 3, 1, 9, 30, 0, 0, time.Local)))
	assert.True(t, payload.End.Time.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Nil(t, payload.None.Ptr())

	var bad struct {
		At FlexTime `json:"at"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"at":"tomorrow"}`), &bad))
}
