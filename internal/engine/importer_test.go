package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
)

// MockFetcher simulates the network layer using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

const contactsFixture = `BEGIN:VCARD
VERSION:4.0
FN:John Doe
BDAY:2000-01-01
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Smith;Jane;;;
BDAY:19851201
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Year
BDAY:--02-29
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Birthday
END:VCARD
`

func TestProfileImporter_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(contactsFixture), 0600))

	im := &engine.ProfileImporter{}
	profiles, err := im.Import(context.Background(), engine.ImportConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	require.NoError(t, err)
	require.Len(t, profiles, 2, "year-less and missing birthdays are skipped")
	assert.Equal(t, "John Doe", profiles[0].Name)
	assert.Equal(t, date(2000, 1, 1), profiles[0].Date)
	assert.Contains(t, profiles[1].Name, "Smith", "N is used when FN is absent")
	assert.Equal(t, date(1985, 12, 1), profiles[1].Date)
}

func TestProfileImporter_Web(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/card", "me", "secret").
		Return(io.NopCloser(strings.NewReader(contactsFixture)), nil)

	im := &engine.ProfileImporter{Fetcher: fetcher}
	profiles, err := im.Import(context.Background(), engine.ImportConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  "https://dav.example.com/card",
		WebUser: "me",
		WebPass: "secret",
	})

	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	fetcher.AssertExpectations(t)
}

func TestProfileImporter_Errors(t *testing.T) {
	failing := new(MockFetcher)
	failing.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	tests := []struct {
		name    string
		im      *engine.ProfileImporter
		cfg     engine.ImportConfig
		wantErr string
	}{
		{"Empty local path", &engine.ProfileImporter{}, engine.ImportConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Empty URL", &engine.ProfileImporter{}, engine.ImportConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"No fetcher", &engine.ProfileImporter{}, engine.ImportConfig{Mode: config.SourceModeWeb, WebURL: "http://x"}, config.ErrFetcherMissing},
		{"Unknown mode", &engine.ProfileImporter{}, engine.ImportConfig{Mode: "ftp"}, config.ErrModeUnsupport},
		{"Network failure", &engine.ProfileImporter{Fetcher: failing}, engine.ImportConfig{Mode: config.SourceModeWeb, WebURL: "http://x"}, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.im.Import(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfileImporter_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(contactsFixture), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := &engine.ProfileImporter{}
	_, err := im.Import(ctx, engine.ImportConfig{Mode: config.SourceModeLocal, LocalPath: path})
	assert.ErrorIs(t, err, context.Canceled)
}
