package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/finproof/finproof/internal/scanning"
	"github.com/finproof/finproof/internal/statement"
)

// multipartUpload builds a multipart body with one file field.
func multipartUpload(filename, contentType string, data []byte) (io.Reader, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(data)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	return &buf, writer.FormDataContentType()
}

var _ = Describe("Server", func() {
	var (
		extractor   *fakeExtractor
		reader      DocumentReader
		auth        BasicAuth
		server      *Server
		ghttpServer *ghttp.Server
	)

	BeforeEach(func() {
		total := 9.99
		extractor = &fakeExtractor{expense: &scanning.ExpenseData{Vendor: "Acme", Total: &total, Currency: "USD"}}
		reader = stubReader(statementDoc(), nil)
		auth = BasicAuth{}
	})

	JustBeforeEach(func() {
		service := NewServiceWithDeps(extractor, reader, &fixedIDGenerator{id: "test-id"})
		server = NewServerWithMux(service, auth, http.NewServeMux())
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	Describe("GET /health", func() {
		It("should report ok", func() {
			resp, err := http.Get(ghttpServer.URL() + "/health")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("status", "ok"))
		})
	})

	Describe("POST /analyse", func() {
		It("should return the extracted expense fields", func() {
			body, contentType := multipartUpload("receipt.jpg", "image/jpeg", []byte("fake-jpeg"))
			resp, err := http.Post(ghttpServer.URL()+"/analyse", contentType, body)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result ExpenseResult
			Expect(json.NewDecoder(resp.Body).Decode(&result)).To(Succeed())
			Expect(result.Vendor).To(Equal("Acme"))
			Expect(result.Currency).To(Equal("USD"))
			Expect(result.ID).To(Equal("test-id"))
		})

		It("should serve the alias spelling too", func() {
			body, contentType := multipartUpload("receipt.jpg", "image/jpeg", []byte("fake-jpeg"))
			resp, err := http.Post(ghttpServer.URL()+"/analyze", contentType, body)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})

		When("no file is attached", func() {
			It("should return 400", func() {
				var buf bytes.Buffer
				writer := multipart.NewWriter(&buf)
				Expect(writer.Close()).To(Succeed())

				resp, err := http.Post(ghttpServer.URL()+"/analyse", writer.FormDataContentType(), &buf)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("the extension is unsupported", func() {
			It("should return 400", func() {
				body, contentType := multipartUpload("notes.txt", "", []byte("hello"))
				resp, err := http.Post(ghttpServer.URL()+"/analyse", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("the declared content type is unsupported", func() {
			It("should return 400", func() {
				body, contentType := multipartUpload("receipt.jpg", "text/html", []byte("<html>"))
				resp, err := http.Post(ghttpServer.URL()+"/analyse", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("the file is empty", func() {
			It("should return 400", func() {
				body, contentType := multipartUpload("receipt.jpg", "image/jpeg", nil)
				resp, err := http.Post(ghttpServer.URL()+"/analyse", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("the extraction service fails", func() {
			BeforeEach(func() {
				extractor = &fakeExtractor{err: errors.New("model unavailable")}
			})

			It("should return 502", func() {
				body, contentType := multipartUpload("receipt.jpg", "image/jpeg", []byte("fake-jpeg"))
				resp, err := http.Post(ghttpServer.URL()+"/analyse", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))
			})
		})
	})

	Describe("POST /check-statement", func() {
		It("should return the statement report", func() {
			body, contentType := multipartUpload("statement.pdf", "application/pdf", []byte("%PDF-1.7"))
			resp, err := http.Post(ghttpServer.URL()+"/check-statement", contentType, body)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result StatementResult
			Expect(json.NewDecoder(resp.Body).Decode(&result)).To(Succeed())
			Expect(result.Verdict).To(Equal(statement.VerdictLikelyGenuine))
			Expect(result.Bank).To(Equal("Barclays"))
			Expect(result.Confidence).To(BeNumerically(">", 0))
		})

		When("the upload is not a PDF", func() {
			It("should return 400", func() {
				body, contentType := multipartUpload("statement.png", "image/png", []byte("fake-png"))
				resp, err := http.Post(ghttpServer.URL()+"/check-statement", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("the PDF has no pages", func() {
			BeforeEach(func() {
				reader = stubReader(&statement.Document{}, nil)
			})

			It("should return 400 with an explanation", func() {
				body, contentType := multipartUpload("statement.pdf", "application/pdf", []byte("%PDF-1.7"))
				resp, err := http.Post(ghttpServer.URL()+"/check-statement", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

				var body2 map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body2)).To(Succeed())
				Expect(body2["error"]).To(ContainSubstring("no readable pages"))
			})
		})
	})

	When("basic auth is configured", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "user", Password: "secret"}
		})

		It("should reject unauthenticated uploads", func() {
			body, contentType := multipartUpload("receipt.jpg", "image/jpeg", []byte("fake-jpeg"))
			resp, err := http.Post(ghttpServer.URL()+"/analyse", contentType, body)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("should accept valid credentials", func() {
			body, contentType := multipartUpload("receipt.jpg", "image/jpeg", []byte("fake-jpeg"))
			req, err := http.NewRequest("POST", ghttpServer.URL()+"/analyse", body)
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Content-Type", contentType)
			req.SetBasicAuth("user", "secret")

			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})

		It("should leave health unauthenticated", func() {
			resp, err := http.Get(ghttpServer.URL() + "/health")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
