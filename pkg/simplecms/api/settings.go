package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// SocialRequest lists the social links to change
type SocialRequest struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
}

// SettingsPatchRequest is the request body for updating site settings.
// Social links are merged one by one.
type SettingsPatchRequest struct {
	Title        *string        `json:"title"`
	Tagline      *string        `json:"tagline"`
	Description  *string        `json:"description"`
	Logo         *string        `json:"logo"`
	Favicon      *string        `json:"favicon"`
	FooterText   *string        `json:"footerText"`
	ContactEmail *string        `json:"contactEmail"`
	Social       *SocialRequest `json:"social"`
}

// UpdateSettings merges the given fields into the site settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title != nil && trimmed(*req.Title) == "" {
		writeError(w, r, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.ContactEmail != nil {
		if err := h.validate.Var(trimmed(*req.ContactEmail), "omitempty,email"); err != nil {
			writeError(w, r, http.StatusBadRequest, "contactEmail must be an email address")
			return
		}
	}

	patch := simplecms.SiteSettingsPatch{
		Title:        trimmedPtr(req.Title),
		Tagline:      trimmedPtr(req.Tagline),
		Description:  trimmedPtr(req.Description),
		Logo:         trimmedPtr(req.Logo),
		Favicon:      trimmedPtr(req.Favicon),
		FooterText:   trimmedPtr(req.FooterText),
		ContactEmail: trimmedPtr(req.ContactEmail),
	}
	if s := req.Social; s != nil {
		for _, link := range []*string{s.Facebook, s.Twitter, s.Instagram, s.LinkedIn} {
			if link == nil || trimmed(*link) == "" {
				continue
			}
			if err := h.validate.Var(trimmed(*link), "http_url"); err != nil {
				writeError(w, r, http.StatusBadRequest, "social links must be http(s) URLs")
				return
			}
		}
		patch.Social = &simplecms.SocialPatch{
			Facebook:  trimmedPtr(s.Facebook),
			Twitter:   trimmedPtr(s.Twitter),
			Instagram: trimmedPtr(s.Instagram),
			LinkedIn:  trimmedPtr(s.LinkedIn),
		}
	}

	render.JSON(w, r, h.service.UpdateSiteSettings(r.Context(), patch))
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := trimmed(*s)
	return &v
}
