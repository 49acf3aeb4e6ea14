package helpertest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/hoardcache/hoard/log"

	"github.com/onsi/ginkgo/v2"
)

// GetIntPort returns an port for the current testing
// process by adding the current ginkgo parallel process to
// the base port and returning it as int
func GetIntPort(port int) int {
	return port + ginkgo.GinkgoParallelProcess()
}

// GetStringPort returns an port for the current testing
// process by adding the current ginkgo parallel process to
// the base port and returning it as string
func GetStringPort(port int) string {
	return fmt.Sprintf("%d", GetIntPort(port))
}

// TempFile creates temp file with passed data
func TempFile(data string) *os.File {
	f, err := os.CreateTemp("", "prefix")
	if err != nil {
		log.Log().Fatal(err)
	}

	_, err = f.WriteString(data)
	if err != nil {
		log.Log().Fatal(err)
	}

	return f
}

// DoRequest performs a request with the passed method and body against the handler
func DoRequest(handler http.Handler, method, url string, body io.Reader) (code int, respBody *bytes.Buffer) {
	r := httptest.NewRequest(method, url, body)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)

	return rr.Code, rr.Body
}

// DoGetRequest performs a GET request against the handler
func DoGetRequest(handler http.Handler, url string) (code int, respBody *bytes.Buffer) {
	return DoRequest(handler, http.MethodGet, url, nil)
}
