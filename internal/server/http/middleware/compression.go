package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmadash/internal/server/http/dto"
)

// MaxDecompressedBody bounds how much a gzip request body may inflate to.
const MaxDecompressedBody int64 = 1 << 20

// DecompressRequest inflates gzip encoded JSON bodies. Inflated payloads
// larger than limit fail to read, which handlers report as bad requests.
func DecompressRequest(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = MaxDecompressedBody
	}
	return func(c *gin.Context) {
		if !strings.Contains(strings.ToLower(c.GetHeader("Content-Encoding")), "gzip") {
			c.Next()
			return
		}

		originalBody := c.Request.Body
		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed gzip body"})
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(reader), limit)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
