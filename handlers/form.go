package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"student-records/apperrors"
)

const (
	// room for the non-file fields of a multipart body
	formOverhead = 1 << 20
	// parts above this are spooled to temp files by net/http
	multipartMemory = 8 << 20
)

// requestForm holds the fields of a write request regardless of whether it
// arrived as JSON, urlencoded or multipart.
type requestForm struct {
	values map[string]string
	files  map[string]*multipart.FileHeader
	mp     *multipart.Form
}

func (f *requestForm) value(key string) string {
	return f.values[key]
}

func (f *requestForm) file(key string) *multipart.FileHeader {
	return f.files[key]
}

// cleanup drops the temp files net/http spooled for large parts
func (f *requestForm) cleanup() {
	if f.mp != nil {
		f.mp.RemoveAll()
	}
}

// parseRequestForm reads the body of r. maxFileBytes bounds a single uploaded
// file; the whole body may be slightly larger to fit the other fields.
func parseRequestForm(w http.ResponseWriter, r *http.Request, maxFileBytes int64) (*requestForm, error) {
	form := &requestForm{
		values: map[string]string{},
		files:  map[string]*multipart.FileHeader{},
	}
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes+formOverhead)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err, "Invalid form data")
		}
		form.mp = r.MultipartForm
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				form.values[k] = vs[0]
			}
		}
		for k, fhs := range r.MultipartForm.File {
			if len(fhs) > 0 {
				form.files[k] = fhs[0]
			}
		}

	case "application/json":
		var body map[string]interface{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, bodyError(err, "Invalid JSON")
		}
		for k, v := range body {
			if s, ok := jsonScalar(v); ok {
				form.values[k] = s
			}
		}

	default:
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err, "Invalid form data")
		}
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				form.values[k] = vs[0]
			}
		}
	}

	return form, nil
}

func bodyError(err error, message string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.NewUploadError("File too large", err)
	}
	return &apperrors.Error{Kind: apperrors.KindValidation, Message: message, Err: err}
}

func jsonScalar(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
