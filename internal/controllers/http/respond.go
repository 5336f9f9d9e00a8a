package http

import (
	"log"
	"net/http"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/gin-gonic/gin"
)

// responder renders the JSON envelopes. In development the underlying error
// detail is returned to the caller; in production internal errors are logged
// server-side and replaced with a generic message.
type responder struct {
	dev bool
}

func (r *responder) success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func (r *responder) successList(c *gin.Context, results int, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "results": results, "data": data})
}

func (r *responder) err(c *gin.Context, err error) {
	e := apperr.From(err)
	status := e.Kind.HTTPStatus()

	envelope := "fail"
	if status >= http.StatusInternalServerError {
		envelope = "error"
	}

	if e.Kind == apperr.KindInternal {
		log.Printf("ERROR %s %s: %v", c.Request.Method, c.Request.URL.Path, e)
	}

	body := gin.H{"status": envelope, "message": e.Message}
	if r.dev {
		body["error"] = e.Error()
	}
	c.JSON(status, body)
}

func (r *responder) invalid(c *gin.Context, err error) {
	r.err(c, apperr.Wrap(apperr.KindInvalid, "invalid input data", err))
}
