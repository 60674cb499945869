package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"student-records/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	return newMultipartRequestTo(t, http.MethodPost, "/students", fields, fileName, content)
}

func newMultipartRequestTo(t *testing.T, method, target string, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("photo", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseRequestFormJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/students",
		strings.NewReader(`{"idno":"1","level":2,"active":true,"photo":null,"tags":["a"]}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	form, err := parseRequestForm(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)

	assert.Equal(t, "1", form.value("idno"))
	assert.Equal(t, "2", form.value("level"))
	assert.Equal(t, "true", form.value("active"))
	assert.Equal(t, "", form.value("photo"))
	assert.Equal(t, "", form.value("tags"))
}

func TestParseRequestFormInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")

	_, err := parseRequestForm(httptest.NewRecorder(), req, 1<<20)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "Invalid JSON", apperrors.Message(err))
}

func TestParseRequestFormEmptyJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Content-Type", "application/json")

	form, err := parseRequestForm(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)
	assert.Empty(t, form.values)
}

func TestParseRequestFormMultipart(t *testing.T) {
	req := newMultipartRequest(t, map[string]string{"idno": "1", "lastname": "Cruz"}, "a.png", []byte("png"))

	form, err := parseRequestForm(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)
	defer form.cleanup()

	assert.Equal(t, "1", form.value("idno"))
	assert.Equal(t, "Cruz", form.value("lastname"))
	require.NotNil(t, form.file("photo"))
	assert.Equal(t, "a.png", form.file("photo").Filename)
	assert.Equal(t, int64(3), form.file("photo").Size)
}

func TestParseRequestFormBodyTooLarge(t *testing.T) {
	req := newMultipartRequest(t, nil, "a.png", bytes.Repeat([]byte("x"), 2*formOverhead))

	_, err := parseRequestForm(httptest.NewRecorder(), req, 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUpload, apperrors.KindOf(err))
	assert.Equal(t, "File too large", apperrors.Message(err))
}

func TestReadPhotoInput(t *testing.T) {
	withFile, err := parseRequestForm(httptest.NewRecorder(),
		newMultipartRequest(t, map[string]string{"photo": "ignored.png"}, "new.jpg", []byte("jpg")), 1<<20)
	require.NoError(t, err)
	p := readPhotoInput(withFile)
	assert.Equal(t, photoNewFile, p.kind)
	assert.Equal(t, ".jpg", p.ext())

	withName, err := parseRequestForm(httptest.NewRecorder(),
		newMultipartRequest(t, map[string]string{"photo": "1712-42.png"}, "", nil), 1<<20)
	require.NoError(t, err)
	p = readPhotoInput(withName)
	assert.Equal(t, photoExisting, p.kind)
	assert.Equal(t, "1712-42.png", p.name)

	blank, err := parseRequestForm(httptest.NewRecorder(),
		newMultipartRequest(t, map[string]string{"photo": "   "}, "", nil), 1<<20)
	require.NoError(t, err)
	assert.Equal(t, photoAbsent, readPhotoInput(blank).kind)
}

func TestStudentFieldsValidate(t *testing.T) {
	valid := studentFields{idno: "1", lastname: "Cruz", firstname: "Ana", course: "BSIT", level: "4"}

	level, err := valid.validate()
	require.NoError(t, err)
	assert.Equal(t, 4, level)

	zero := valid
	zero.level = "0"
	level, err = zero.validate()
	require.NoError(t, err)
	assert.Equal(t, 0, level)

	missing := valid
	missing.course = ""
	_, err = missing.validate()
	assert.Equal(t, "All fields are required", apperrors.Message(err))

	bad := valid
	bad.level = "2nd"
	_, err = bad.validate()
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "Level must be a whole number", apperrors.Message(err))
}
