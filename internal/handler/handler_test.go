package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"
	"github.com/sadiclarsan/web/internal/db"
	"github.com/sadiclarsan/web/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubHTMLRender satisfies gin's HTML renderer without any template
// files; handler tests assert on status codes and state, not markup.
type stubHTMLRender struct{}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return gdb
}

// newTestEngine wires the full route table against a fresh API with the
// stub renderer. staticRoot receives uploaded images.
func newTestEngine(t *testing.T, gdb *gorm.DB, staticRoot string) (*gin.Engine, *API) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := NewAPI(gdb, zerolog.Nop(), staticRoot)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("Cookies", store))
	r.HTMLRender = &stubHTMLRender{}

	r.GET("/", api.ShowHome)
	r.GET("/blog/:token", api.ShowBlogPost)
	r.GET("/sitemap.xml", api.Sitemap)
	r.POST("/Home/Contact", api.SubmitContact)
	r.GET("/Home/GetBlogContent", api.GetBlogContent)

	r.GET("/Auth/Login", api.ShowLoginPage)
	r.POST("/Auth/Login", api.Login)
	r.GET("/Auth/Logout", api.Logout)

	admin := r.Group("/Admin")
	admin.Use(api.AuthRequired())
	{
		admin.GET("/BlogList", api.ShowBlogList)
		admin.GET("/CreateBlog", api.ShowCreateBlog)
		admin.POST("/CreateBlog", api.CreateBlog)
		admin.GET("/EditBlog/:id", api.ShowEditBlog)
		admin.POST("/EditBlog/:id", api.EditBlog)
		admin.POST("/DeleteBlog/:id", api.DeleteBlog)
		admin.GET("/ContactMessages", api.ShowContactMessages)
		admin.POST("/MarkAsRead/:id", api.MarkAsRead)
		admin.GET("/SeoSettings", api.ShowSeoSettings)
		admin.POST("/SeoSettings", api.UpdateSeoSettings)
		admin.GET("/ChangePassword", api.ShowChangePassword)
		admin.POST("/ChangePassword", api.ChangePassword)
	}

	return r, api
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doRequest(r *gin.Engine, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// loginAs bootstraps an admin account and returns the session cookies of
// a successful login.
func loginAs(t *testing.T, r *gin.Engine, gdb *gorm.DB, username, password string) []*http.Cookie {
	t.Helper()

	admins := service.NewAdminUserService(gdb)
	if err := admins.EnsureDefaultAdmin(username, username+"@sadiclarsan.com.tr", password); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}

	rr := doRequest(r, formRequest("/Auth/Login", url.Values{
		"username": {username},
		"password": {password},
	}), nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("login failed with status %d", rr.Code)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie after login")
	}
	return cookies
}

// multipartForm builds a multipart body with the given fields and an
// optional file part named imageFile.
func multipartForm(t *testing.T, fields map[string]string, filename, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("imageFile", filename)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := io.WriteString(part, fileContent); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}
