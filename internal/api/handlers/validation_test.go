package handlers

import (
	"testing"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMessages(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name string
		req  any
		want string
	}{
		{name: "valid", req: &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"}},
		{name: "max", req: &RegisterRequest{Name: string(long)}, want: "name must be at most 100 characters"},
		{name: "gte", req: &CreateRewardRequest{Title: "x", Points: -1}, want: "points must be at least 0"},
		{name: "url", req: &SubmitGameRequest{ImageURL: "::"}, want: "image_url must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.req)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", sanitize("  <script>alert(1)</script>hello "))
	assert.Equal(t, "Tom & Jerry", sanitize("Tom &amp; Jerry"))
	assert.Equal(t, "bold", sanitize("<b>bold</b>"))
	assert.Nil(t, sanitizePtr(nil))
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := parseID(" "+id.String()+" ", domain.ErrGameNotFound)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseID("42", domain.ErrGameNotFound)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{in: "", wantOK: true},
		{in: "2026-03-01", want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "2026-03-01T18:30:00Z", want: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC), wantOK: true},
		{in: "2026-03-01T18:30", want: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC), wantOK: true},
		{in: "March 1st", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}
