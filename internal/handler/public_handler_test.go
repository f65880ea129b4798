package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sadiclarsan/web/internal/db"
	"github.com/sadiclarsan/web/internal/service"
)

func TestShowBlogPostResolvesSlugAndLegacyID(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r, _ := newTestEngine(t, gdb, t.TempDir())

	blogs := service.NewBlogService(gdb)
	post, err := blogs.Create(service.BlogPostInput{Title: "Yeni Tesis Açılışı", Content: "içerik", IsActive: true})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	legacy := db.BlogPost{ID: 42, Title: "Eski Yazı", Content: "içerik", IsActive: true, CreatedDate: time.Now()}
	if err := gdb.Create(&legacy).Error; err != nil {
		t.Fatalf("create legacy post: %v", err)
	}

	rr := doRequest(r, httptest.NewRequest(http.MethodGet, "/blog/"+post.SeoURL, nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("slug lookup: expected 200, got %d", rr.Code)
	}

	rr = doRequest(r, httptest.NewRequest(http.MethodGet, "/blog/42", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("legacy id lookup: expected 200, got %d", rr.Code)
	}

	rr = doRequest(r, httptest.NewRequest(http.MethodGet, "/blog/43", nil), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rr.Code)
	}
}

func TestShowBlogPostHidesInactivePosts(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r, _ := newTestEngine(t, gdb, t.TempDir())

	blogs := service.NewBlogService(gdb)
	post, err := blogs.Create(service.BlogPostInput{Title: "Taslak", Content: "içerik", IsActive: false})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	rr := doRequest(r, httptest.NewRequest(http.MethodGet, "/blog/"+post.SeoURL, nil), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for inactive post, got %d", rr.Code)
	}
}

func TestGetBlogContentCountsViews(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r, _ := newTestEngine(t, gdb, t.TempDir())

	blogs := service.NewBlogService(gdb)
	post, err := blogs.Create(service.BlogPostInput{Title: "Sayaçlı Yazı", Content: "içerik", Author: "Mehmet", IsActive: true})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	rr := doRequest(r, httptest.NewRequest(http.MethodGet, "/Home/GetBlogContent?id="+itoa(post.ID), nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var payload struct {
		Title     string `json:"title"`
		Author    string `json:"author"`
		ViewCount int    `json:"viewCount"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Title != "Sayaçlı Yazı" || payload.Author != "Mehmet" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", payload.ViewCount)
	}

	doRequest(r, httptest.NewRequest(http.MethodGet, "/Home/GetBlogContent?id="+itoa(post.ID), nil), nil)
	reloaded, err := blogs.Get(post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if reloaded.ViewCount != 2 {
		t.Fatalf("expected stored view count 2, got %d", reloaded.ViewCount)
	}

	rr = doRequest(r, httptest.NewRequest(http.MethodGet, "/Home/GetBlogContent?id=999", nil), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", rr.Code)
	}
}

func TestSitemapListsActivePostsNewestFirst(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r, _ := newTestEngine(t, gdb, t.TempDir())

	older := db.BlogPost{Title: "Birinci", Content: "içerik", SeoURL: "birinci", IsActive: true, CreatedDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := db.BlogPost{Title: "İkinci", Content: "içerik", IsActive: true, CreatedDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	hidden := db.BlogPost{Title: "Gizli", Content: "içerik", SeoURL: "gizli", IsActive: false, CreatedDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	for _, p := range []*db.BlogPost{&older, &newer, &hidden} {
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	rr := doRequest(r, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "https://www.sadiclarsan.com.tr/</loc>") {
		t.Fatalf("missing site root entry in %s", body)
	}

	// The slug-less post falls back to its numeric id; newest first.
	newerIdx := strings.Index(body, "/blog/"+itoa(newer.ID))
	olderIdx := strings.Index(body, "/blog/birinci")
	if newerIdx == -1 || olderIdx == -1 {
		t.Fatalf("missing post entries in %s", body)
	}
	if newerIdx > olderIdx {
		t.Fatal("expected the newer post before the older one")
	}
	if strings.Contains(body, "gizli") {
		t.Fatal("inactive post must not appear in the sitemap")
	}
}

func TestSubmitContactRedirectsAndPersists(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r, _ := newTestEngine(t, gdb, t.TempDir())

	rr := doRequest(r, formRequest("/Home/Contact", url.Values{
		"fullName": {"Ayşe Yılmaz"},
		"email":    {"ayse@example.com"},
		"subject":  {"Teklif"},
		"message":  {"Teklif rica ederim."},
	}), nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	var count int64
	gdb.Model(&db.Contact{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 stored message, got %d", count)
	}

	// Invalid input still redirects but stores nothing.
	rr = doRequest(r, formRequest("/Home/Contact", url.Values{"fullName": {""}}), nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect for invalid form, got %d", rr.Code)
	}
	gdb.Model(&db.Contact{}).Count(&count)
	if count != 1 {
		t.Fatalf("invalid form must not persist, got %d rows", count)
	}
}
