// internal/handlers/submit-application/handler_test.go
package submitapplication

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/common/observability"
	"dygs-jobs/internal/models"
	"dygs-jobs/internal/resumes"
	"dygs-jobs/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^DYGS-\d+-[0-9a-z]{9}$`)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

// ==========================
// Mock Implementations
// ==========================

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, id string) (*models.Application, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*models.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) List(ctx context.Context) ([]models.Application, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockStore) Close(ctx context.Context) error { return nil }

func (m *MockStore) Backend() string { return "mock" }

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(app *models.Application) {
	m.Called(app)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutResume(ctx context.Context, key string, upload *resumes.Upload) error {
	args := m.Called(ctx, key, upload)
	return args.Error(0)
}

func (m *MockObjectStore) DeleteResume(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) Kind() string { return "mock" }

// ==========================
// Test Helper Functions
// ==========================

func init() {
	gin.SetMode(gin.TestMode)
}

func createTestConfig() *Config {
	return &Config{
		IDPrefix:       "DYGS",
		LineOAURL:      "https://line.me/R/ti/p/@dygs-logistics",
		MaxResumeBytes: 1024,
		Timeout:        5 * time.Second,
	}
}

func somchaiForm() url.Values {
	return url.Values{
		"first_name":       {"Somchai"},
		"last_name":        {"Sukjai"},
		"email":            {"s@x.com"},
		"phone":            {"0812345678"},
		"position":         {"Delivery Driver"},
		"experience_years": {"2"},
		"education":        {"High school"},
		"skills":           {"driving"},
	}
}

type resumeFile struct {
	filename    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, form url.Values, file *resumeFile) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range form {
		for _, v := range values {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, file.filename))
		h.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, Route, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func urlencodedRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST(Route, h.Handle)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newTestHandler(t *testing.T, store *MockStore, objects resumes.ObjectStore, dispatcher *MockDispatcher) *Handler {
	return NewHandler(createTestConfig(), store, objects, dispatcher, observability.Nop(), logger.NewTestLogger(t))
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Submit_Success(t *testing.T) {
	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		objects        func() *MockObjectStore
		validateOutput func(t *testing.T, app *models.Application)
	}{
		{
			name: "urlencoded without resume",
			request: func(t *testing.T) *http.Request {
				return urlencodedRequest(somchaiForm())
			},
			validateOutput: func(t *testing.T, app *models.Application) {
				assert.Equal(t, "Somchai", app.FirstName)
				assert.Equal(t, "Sukjai", app.LastName)
				assert.Equal(t, 2, app.ExperienceYears)
				assert.Equal(t, models.StatusPending, app.Status)
				assert.Nil(t, app.Resume)
				assert.Empty(t, app.CoverLetter)
			},
		},
		{
			name: "multipart with resume kept on record",
			request: func(t *testing.T) *http.Request {
				form := somchaiForm()
				form.Set("cover_letter", "  Ready to start next month.  ")
				return multipartRequest(t, form, &resumeFile{"cv.pdf", "application/pdf", pdfBytes})
			},
			validateOutput: func(t *testing.T, app *models.Application) {
				require.NotNil(t, app.Resume)
				assert.Equal(t, "cv.pdf", app.Resume.Filename)
				assert.Equal(t, "application/pdf", app.Resume.ContentType)
				assert.Equal(t, pdfBytes, app.Resume.Data)
				assert.Empty(t, app.Resume.ObjectKey)
				assert.Equal(t, "Ready to start next month.", app.CoverLetter)
			},
		},
		{
			name: "multipart with resume in object storage",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, somchaiForm(), &resumeFile{"cv.pdf", "application/pdf", pdfBytes})
			},
			objects: func() *MockObjectStore {
				objects := &MockObjectStore{}
				objects.On("PutResume", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "resumes/DYGS-") && strings.HasSuffix(key, "/cv.pdf")
				}), mock.AnythingOfType("*resumes.Upload")).Return(nil)
				return objects
			},
			validateOutput: func(t *testing.T, app *models.Application) {
				require.NotNil(t, app.Resume)
				assert.Nil(t, app.Resume.Data)
				assert.Equal(t, "resumes/"+app.ApplicationID+"/cv.pdf", app.Resume.ObjectKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			dispatcher := &MockDispatcher{}

			var saved *models.Application
			store.On("Save", mock.Anything, mock.AnythingOfType("*models.Application")).
				Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Application) }).
				Return(nil).Once()
			dispatcher.On("Dispatch", mock.AnythingOfType("*models.Application")).Return().Once()

			var objects resumes.ObjectStore
			var objectMock *MockObjectStore
			if tt.objects != nil {
				objectMock = tt.objects()
				objects = objectMock
			}

			w := serve(t, newTestHandler(t, store, objects, dispatcher), tt.request(t))

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var out Output
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			assert.True(t, out.Success)
			assert.Regexp(t, idPattern, out.ApplicationID)
			assert.Equal(t, SuccessMessage, out.Message)
			assert.Equal(t, "https://line.me/R/ti/p/@dygs-logistics", out.LineOAURL)

			require.NotNil(t, saved)
			assert.Equal(t, out.ApplicationID, saved.ApplicationID)
			assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
			tt.validateOutput(t, saved)

			store.AssertExpectations(t)
			dispatcher.AssertExpectations(t)
			if objectMock != nil {
				objectMock.AssertExpectations(t)
			}
		})
	}
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Submit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(form url.Values)
		wantField string
		wantCode  string
	}{
		{name: "missing first name", mutate: func(f url.Values) { f.Del("first_name") }, wantField: "first_name", wantCode: "VALIDATION_FAILED"},
		{name: "blank last name", mutate: func(f url.Values) { f.Set("last_name", "   ") }, wantField: "last_name", wantCode: "VALIDATION_FAILED"},
		{name: "missing email", mutate: func(f url.Values) { f.Del("email") }, wantField: "email", wantCode: "VALIDATION_FAILED"},
		{name: "malformed email", mutate: func(f url.Values) { f.Set("email", "somchai") }, wantField: "email", wantCode: "VALIDATION_FAILED"},
		{name: "malformed phone", mutate: func(f url.Values) { f.Set("phone", "12ab") }, wantField: "phone", wantCode: "VALIDATION_FAILED"},
		{name: "missing phone", mutate: func(f url.Values) { f.Del("phone") }, wantField: "phone", wantCode: "VALIDATION_FAILED"},
		{name: "missing position", mutate: func(f url.Values) { f.Del("position") }, wantField: "position", wantCode: "VALIDATION_FAILED"},
		{name: "experience omitted", mutate: func(f url.Values) { f.Del("experience_years") }, wantField: "experience_years", wantCode: "VALIDATION_FAILED"},
		{name: "experience not a number", mutate: func(f url.Values) { f.Set("experience_years", "two") }, wantField: "experience_years", wantCode: "VALIDATION_FAILED"},
		{name: "negative experience", mutate: func(f url.Values) { f.Set("experience_years", "-1") }, wantField: "experience_years", wantCode: "VALIDATION_FAILED"},
		{name: "missing education", mutate: func(f url.Values) { f.Del("education") }, wantField: "education", wantCode: "VALIDATION_FAILED"},
		{name: "missing skills", mutate: func(f url.Values) { f.Del("skills") }, wantField: "skills", wantCode: "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			dispatcher := &MockDispatcher{}

			form := somchaiForm()
			tt.mutate(form)
			w := serve(t, newTestHandler(t, store, nil, dispatcher), urlencodedRequest(form))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.Contains(t, body.Details, tt.wantField)

			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
		})
	}
}

func TestHandler_Submit_ExperienceNotBoundsChecked(t *testing.T) {
	store := &MockStore{}
	dispatcher := &MockDispatcher{}
	store.On("Save", mock.Anything, mock.MatchedBy(func(app *models.Application) bool {
		return app.ExperienceYears == 75
	})).Return(nil)
	dispatcher.On("Dispatch", mock.Anything).Return()

	form := somchaiForm()
	form.Set("experience_years", "75")
	w := serve(t, newTestHandler(t, store, nil, dispatcher), urlencodedRequest(form))

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestHandler_Submit_FileRejected(t *testing.T) {
	tests := []struct {
		name     string
		file     *resumeFile
		wantCode string
		wantMsg  string
	}{
		{
			name:     "executable",
			file:     &resumeFile{"setup.exe", "application/octet-stream", []byte("MZ\x90\x00")},
			wantCode: "INVALID_FILE",
			wantMsg:  "Only image, PDF and document files are allowed!",
		},
		{
			name:     "text disguised as pdf",
			file:     &resumeFile{"cv.pdf", "application/pdf", []byte("plain text, not a pdf at all")},
			wantCode: "INVALID_FILE",
			wantMsg:  "Only image, PDF and document files are allowed!",
		},
		{
			name:     "over the size limit",
			file:     &resumeFile{"cv.pdf", "application/pdf", append(append([]byte{}, pdfBytes...), bytes.Repeat([]byte("x"), 2048)...)},
			wantCode: "FILE_TOO_LARGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			dispatcher := &MockDispatcher{}

			w := serve(t, newTestHandler(t, store, nil, dispatcher), multipartRequest(t, somchaiForm(), tt.file))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Error)
			}
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Submit_BodyTooLarge(t *testing.T) {
	store := &MockStore{}
	dispatcher := &MockDispatcher{}
	cfg := createTestConfig()
	h := NewHandler(cfg, store, nil, dispatcher, observability.Nop(), logger.NewTestLogger(t))

	// larger than max resume + 1 MiB of framing
	huge := bytes.Repeat([]byte("a"), int(cfg.bodyLimit())+1024)
	w := serve(t, h, multipartRequest(t, somchaiForm(), &resumeFile{"cv.pdf", "application/pdf", huge}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ==========================
// Failure Tests
// ==========================

func TestHandler_Submit_StorageFailures(t *testing.T) {
	tests := []struct {
		name     string
		saveErr  error
		wantCode string
	}{
		{name: "write failure", saveErr: fmt.Errorf("%w: disk full", storage.ErrStorageFailed), wantCode: "STORAGE_FAILED"},
		{name: "duplicate id", saveErr: fmt.Errorf("%w: DYGS-1-abc", storage.ErrDuplicate), wantCode: "DUPLICATE_APPLICATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			dispatcher := &MockDispatcher{}
			store.On("Save", mock.Anything, mock.Anything).Return(tt.saveErr)

			w := serve(t, newTestHandler(t, store, nil, dispatcher), urlencodedRequest(somchaiForm()))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, "Failed to process application", body.Error)
			assert.Empty(t, body.Details)
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
		})
	}
}

func TestHandler_Submit_ObjectStoreFailure(t *testing.T) {
	store := &MockStore{}
	dispatcher := &MockDispatcher{}
	objects := &MockObjectStore{}
	objects.On("PutResume", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: connection refused", resumes.ErrUploadFailed))

	req := multipartRequest(t, somchaiForm(), &resumeFile{"cv.pdf", "application/pdf", pdfBytes})
	w := serve(t, newTestHandler(t, store, objects, dispatcher), req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
}

func TestHandler_Submit_SaveFailureRemovesResume(t *testing.T) {
	tests := []struct {
		name      string
		deleteErr error
	}{
		{name: "resume removed"},
		{name: "removal failure still reports storage error", deleteErr: errors.New("bucket unreachable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			dispatcher := &MockDispatcher{}
			objects := &MockObjectStore{}

			var uploaded string
			objects.On("PutResume", mock.Anything, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { uploaded = args.String(1) }).
				Return(nil).Once()
			objects.On("DeleteResume", mock.Anything, mock.MatchedBy(func(key string) bool {
				return key == uploaded
			})).Return(tt.deleteErr).Once()
			store.On("Save", mock.Anything, mock.Anything).
				Return(fmt.Errorf("%w: disk full", storage.ErrStorageFailed))

			req := multipartRequest(t, somchaiForm(), &resumeFile{"cv.pdf", "application/pdf", pdfBytes})
			w := serve(t, newTestHandler(t, store, objects, dispatcher), req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.NotEmpty(t, uploaded)
			objects.AssertExpectations(t)
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
		})
	}
}

func TestExecute_NilInput(t *testing.T) {
	h := newTestHandler(t, &MockStore{}, nil, &MockDispatcher{})
	_, err := Execute(context.Background(), h, nil, nil)
	assert.Error(t, err)
}

func TestExecute_ReturnsOutput(t *testing.T) {
	store := &MockStore{}
	dispatcher := &MockDispatcher{}
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", mock.Anything).Return()

	input := &Input{
		FirstName: "Somchai", LastName: "Sukjai", Email: "s@x.com", Phone: "0812345678",
		Position: "Delivery Driver", ExperienceYears: " 2 ", Education: "High school", Skills: "driving",
	}
	out, err := Execute(context.Background(), newTestHandler(t, store, nil, dispatcher), input, nil)

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Regexp(t, idPattern, out.ApplicationID)
	assert.False(t, errors.Is(err, storage.ErrStorageFailed))
}
