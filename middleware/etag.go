package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bodyRecorder buffers the response body so the digest can be computed after
// the handler chain has run.
type bodyRecorder struct {
	gin.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *bodyRecorder) WriteHeader(status int) {
	w.status = status
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// WriteHeaderNow is suppressed so headers stay unwritten until the digest
// has been computed
func (w *bodyRecorder) WriteHeaderNow() {}

func (w *bodyRecorder) Status() int {
	return w.status
}

func (w *bodyRecorder) Size() int {
	return w.body.Len()
}

// ETag computes an MD5 digest of every GET/HEAD response body, sets it as the
// ETag header, and answers 304 Not Modified with an empty body when the
// request's If-None-Match already carries that digest.
func ETag() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = recorder
		c.Next()
		c.Writer = recorder.ResponseWriter

		sum := md5.Sum(recorder.body.Bytes())
		etag := hex.EncodeToString(sum[:])
		c.Writer.Header().Set("ETag", etag)

		if c.Request.Header.Get("If-None-Match") == etag {
			c.Writer.WriteHeader(http.StatusNotModified)
			return
		}

		c.Writer.WriteHeader(recorder.status)
		_, _ = c.Writer.Write(recorder.body.Bytes())
	}
}
