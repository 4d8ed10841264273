package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/magtapp/image-service/internal/dto"
	"github.com/magtapp/image-service/internal/entity"
	"github.com/magtapp/image-service/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type fakeUploadUseCase struct {
	obj *entity.StoredObject
	err error

	// entered is closed the moment Upload starts, readBody drains the
	// request body the way the real pipeline does
	entered  chan struct{}
	readBody bool

	ctx  context.Context
	req  dto.UploadRequest
	body []byte
}

func (f *fakeUploadUseCase) Upload(ctx context.Context, req dto.UploadRequest) (*entity.StoredObject, error) {
	f.ctx = ctx
	f.req = req

	if f.entered != nil {
		close(f.entered)
		f.entered = nil
	}

	if f.readBody {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		f.body = b
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.obj, nil
}

type fakeMeaningUseCase struct {
	err error

	m dto.Meaning
}

func (f *fakeMeaningUseCase) Record(_ context.Context, m dto.Meaning) (*entity.MeaningRecord, error) {
	f.m = m
	if f.err != nil {
		return nil, f.err
	}
	return &entity.MeaningRecord{Word: m.Word, Timestamp: "1", Meaning: m.Meaning, ImageLocation: m.ImageLocation}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})       {}
func (nopLogger) Warn(string, ...interface{})       {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

func newTestApp(uploadOriginal, uploadCompressed *fakeUploadUseCase, meaningWord, meaningCompressed *fakeMeaningUseCase) *fiber.App {
	app := fiber.New()
	NewUploadRoutes(app, uploadOriginal, uploadCompressed, meaningWord, meaningCompressed, 0, nopLogger{})

	return app
}

func multipartBody(t *testing.T, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestUploadOriginalImage(t *testing.T) {
	uploads := &fakeUploadUseCase{obj: &entity.StoredObject{
		Key:      "1700000000123-cat.png",
		Bucket:   "magtapp-image-original",
		Location: "http://store.local/magtapp-image-original/1700000000123-cat.png",
	}}
	app := newTestApp(uploads, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	body, contentType := multipartBody(t, "cat.png", "image/png", []byte("fakepng"), map[string]string{"word": "gato"})
	req := httptest.NewRequest(http.MethodPost, "/uploadOriginalImage", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		ImageURL string `json:"imageUrl"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "http://store.local/magtapp-image-original/1700000000123-cat.png", payload.ImageURL)

	assert.Equal(t, "cat.png", uploads.req.Filename)
	assert.Equal(t, "image/png", uploads.req.ContentType)
	assert.Equal(t, "gato", uploads.req.Fields["word"])
	assert.Nil(t, uploads.req.Ref)
}

func TestUploadOriginalImageRejected(t *testing.T) {
	uploads := &fakeUploadUseCase{err: errs.ErrUnsupportedFileType}
	app := newTestApp(uploads, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	body, contentType := multipartBody(t, "cat.txt", "text/plain", []byte("hello"), nil)
	req := httptest.NewRequest(http.MethodPost, "/uploadOriginalImage", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Images only!")
}

func TestUploadOriginalImageMissingFile(t *testing.T) {
	app := newTestApp(&fakeUploadUseCase{}, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/uploadOriginalImage", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUploadOriginalImageOpaqueStorageError(t *testing.T) {
	uploads := &fakeUploadUseCase{err: errs.ErrStorage}
	app := newTestApp(uploads, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	body, contentType := multipartBody(t, "cat.png", "image/png", []byte("fakepng"), nil)
	req := httptest.NewRequest(http.MethodPost, "/uploadOriginalImage", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), errs.ErrStorage.Error())
	assert.Contains(t, string(raw), "upload failed")
}

func TestUploadCompressedImagePassesRefContext(t *testing.T) {
	uploads := &fakeUploadUseCase{obj: &entity.StoredObject{
		Location: "http://store.local/magtapp-image-compressed/uploads/animal/42/1-dog.jpg",
	}}
	app := newTestApp(&fakeUploadUseCase{}, uploads, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	body, contentType := multipartBody(t, "dog.jpg", "image/jpeg", []byte("fakejpg"), nil)
	req := httptest.NewRequest(http.MethodPost, "/uploadCompressedImage/animal/42", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, uploads.req.Ref)
	assert.Equal(t, "animal", uploads.req.Ref.Type)
	assert.Equal(t, "42", uploads.req.Ref.ID)
}

// The upload stage must start while the body is still arriving: the file part
// reader goes to the store write directly instead of being buffered first.
func TestUploadStoreStageStartsMidStream(t *testing.T) {
	entered := make(chan struct{})
	uploads := &fakeUploadUseCase{
		obj:      &entity.StoredObject{ID: uuid.New(), Location: "http://store.local/x"},
		entered:  entered,
		readBody: true,
	}
	r := &V1{uploadOriginal: uploads, logger: nopLogger{}}

	pr, pw := io.Pipe()

	fctx := &fasthttp.RequestCtx{}
	fctx.Request.Header.SetMethod(fiber.MethodPost)
	fctx.Request.Header.SetContentType("multipart/form-data; boundary=abc")
	fctx.Request.SetBodyStream(pr, -1)

	app := fiber.New()
	c := app.AcquireCtx(fctx)
	defer app.ReleaseCtx(c)

	done := make(chan error, 1)
	go func() { done <- r.handleUpload(c, uploads, nil) }()

	prologue := "--abc\r\n" +
		"Content-Disposition: form-data; name=\"image\"; filename=\"cat.png\"\r\n" +
		"Content-Type: image/png\r\n\r\npartial"
	_, err := pw.Write([]byte(prologue))
	require.NoError(t, err)

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("store stage did not start until the body was fully read")
	}

	_, err = pw.Write([]byte("rest\r\n--abc--\r\n"))
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	require.NoError(t, <-done)

	assert.Equal(t, "partialrest", string(uploads.body))
	assert.Equal(t, int64(-1), uploads.req.Size)

	// the pipeline runs under the request context, not context.Background,
	// so a dropped connection cancels an in-flight store write
	assert.Same(t, fctx, uploads.ctx)
}

func TestUploadRespectsConfiguredLimit(t *testing.T) {
	uploads := &fakeUploadUseCase{obj: &entity.StoredObject{Location: "http://store.local/x"}}
	app := fiber.New()
	NewUploadRoutes(app, uploads, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{}, 16, nopLogger{})

	body, contentType := multipartBody(t, "cat.png", "image/png", make([]byte, 64), nil)
	req := httptest.NewRequest(http.MethodPost, "/uploadOriginalImage", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "16 bytes")

	assert.Empty(t, uploads.req.Filename, "upload stage must not run for an oversized request")
}

func TestMaxSizeReaderGuardsLimit(t *testing.T) {
	guarded := newMaxSizeReader(strings.NewReader(strings.Repeat("a", 64)), 16)
	_, err := io.ReadAll(guarded)
	assert.ErrorIs(t, err, errs.ErrFileTooLarge)

	open := newMaxSizeReader(strings.NewReader("abc"), 0)
	b, err := io.ReadAll(open)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))
}

func TestUploadResponseCarriesUploadID(t *testing.T) {
	id := uuid.New()
	uploads := &fakeUploadUseCase{obj: &entity.StoredObject{
		ID:       id,
		Location: "http://store.local/magtapp-image-original/1700000000123-cat.png",
	}}
	app := newTestApp(uploads, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	body, contentType := multipartBody(t, "cat.png", "image/png", []byte("fakepng"), nil)
	req := httptest.NewRequest(http.MethodPost, "/uploadOriginalImage", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id.String(), resp.Header.Get("X-Upload-Id"))
}

func TestImageMeaning(t *testing.T) {
	meanings := &fakeMeaningUseCase{}
	app := newTestApp(&fakeUploadUseCase{}, &fakeUploadUseCase{}, meanings, &fakeMeaningUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/image-meaning",
		strings.NewReader(`{"word":"gato","meaning":"cat","imgloc":"http://store.local/x.png"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Record Entered Successfuly", string(raw))

	assert.Equal(t, "gato", meanings.m.Word)
	assert.Equal(t, "cat", meanings.m.Meaning)
	assert.Equal(t, "http://store.local/x.png", meanings.m.ImageLocation)
}

func TestCompressedImageMeaningFailure(t *testing.T) {
	meanings := &fakeMeaningUseCase{err: errs.ErrRecord}
	app := newTestApp(&fakeUploadUseCase{}, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, meanings)

	req := httptest.NewRequest(http.MethodPost, "/compressed-image-meaning",
		strings.NewReader(`{"word":"perro","meaning":"dog","imgloc":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakeUploadUseCase{}, &fakeUploadUseCase{}, &fakeMeaningUseCase{}, &fakeMeaningUseCase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "App working fine!", string(raw))
}
