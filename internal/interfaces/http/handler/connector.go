package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	connapp "github.com/inventoryhub/backend/internal/application/connector"
	"github.com/inventoryhub/backend/internal/domain/connector"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
)

// Cookie name suffixes for the OAuth round-trip. The provider name is
// prefixed so that parallel flows cannot clobber each other.
const (
	stateCookieSuffix    = "_oauth_state"
	userCookieSuffix     = "_connect_user"
	returnToCookieSuffix = "_return_to"
)

// ConnectorHandler drives the OAuth2 authorization-code flow for external
// providers and manages the resulting connections. Both providers share one
// flow: begin pins a random state to the browser, the callback verifies it
// before any code is exchanged.
type ConnectorHandler struct {
	BaseHandler
	connectService *connapp.ConnectService
	oauthCfg       config.OAuthConfig
	cookieCfg      config.CookieConfig
}

// NewConnectorHandler creates a new connector handler
func NewConnectorHandler(connectService *connapp.ConnectService, oauthCfg config.OAuthConfig, cookieCfg config.CookieConfig) *ConnectorHandler {
	return &ConnectorHandler{
		connectService: connectService,
		oauthCfg:       oauthCfg,
		cookieCfg:      cookieCfg,
	}
}

// Begin starts the authorization-code flow and redirects the browser to the
// provider's consent page
func (h *ConnectorHandler) Begin(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	provider := connector.Provider(c.Param("provider"))
	if !provider.Valid() {
		h.BadRequest(c, "Unknown provider")
		return
	}

	result, err := h.connectService.BeginConnect(c.Request.Context(), provider)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	maxAge := int(h.oauthCfg.StateTTL.Seconds())
	h.setFlowCookie(c, string(provider)+stateCookieSuffix, result.State, maxAge)
	h.setFlowCookie(c, string(provider)+userCookieSuffix, h.signConnectUser(userID, result.State), maxAge)
	h.setFlowCookie(c, string(provider)+returnToCookieSuffix, h.sanitizeReturnTo(c.Query("returnTo")), maxAge)

	c.Redirect(http.StatusFound, result.AuthURL)
}

// Callback receives the provider redirect, verifies the pinned state and
// exchanges the code. The browser always ends up back on the frontend; the
// outcome travels as a query parameter.
func (h *ConnectorHandler) Callback(c *gin.Context) {
	provider := connector.Provider(c.Param("provider"))
	if !provider.Valid() {
		h.BadRequest(c, "Unknown provider")
		return
	}

	state, _ := c.Cookie(string(provider) + stateCookieSuffix)
	userIDStr, _ := c.Cookie(string(provider) + userCookieSuffix)
	returnTo, _ := c.Cookie(string(provider) + returnToCookieSuffix)
	h.clearFlowCookies(c, provider)

	if c.Query("error") != "" {
		h.redirectWithError(c, returnTo, string(provider)+"_denied")
		return
	}
	if state == "" || c.Query("state") != state {
		h.redirectWithError(c, returnTo, "state_mismatch")
		return
	}

	userID, ok := h.verifyConnectUser(userIDStr, state)
	if !ok {
		h.redirectWithError(c, returnTo, "state_mismatch")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, returnTo, "no_code")
		return
	}

	err := h.connectService.CompleteConnect(c.Request.Context(), connapp.CompleteConnectInput{
		UserID:   userID,
		Provider: provider,
		Code:     code,
	})
	if err != nil {
		h.redirectWithError(c, returnTo, "token_exchange_failed")
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL(returnTo, url.Values{"connected": {string(provider)}}))
}

// Status reports the caller's connection state for every provider
func (h *ConnectorHandler) Status(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	statuses, err := h.connectService.Status(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statuses)
}

// Disconnect drops the caller's stored tokens for a provider
func (h *ConnectorHandler) Disconnect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	provider := connector.Provider(c.Param("provider"))
	if err := h.connectService.Disconnect(c.Request.Context(), userID, provider); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// signConnectUser mints the user cookie value "userID|state|mac". Binding
// the state into the MAC ties the cookie to one flow; the browser cannot
// point a finished flow at another account.
func (h *ConnectorHandler) signConnectUser(userID uuid.UUID, state string) string {
	payload := userID.String() + "|" + state
	return payload + "|" + h.connectUserMAC(payload)
}

// verifyConnectUser recovers the user the flow was begun for. The cookie is
// only trusted when its MAC checks out and it was minted for this state.
func (h *ConnectorHandler) verifyConnectUser(value, state string) (uuid.UUID, bool) {
	parts := strings.Split(value, "|")
	if len(parts) != 3 || parts[1] != state {
		return uuid.Nil, false
	}
	expected := h.connectUserMAC(parts[0] + "|" + parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ConnectorHandler) connectUserMAC(payload string) string {
	mac := hmac.New(sha256.New, []byte(h.oauthCfg.StateSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *ConnectorHandler) setFlowCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(sameSiteMode(h.cookieCfg.SameSite))
	c.SetCookie(name, value, maxAge, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *ConnectorHandler) clearFlowCookies(c *gin.Context, provider connector.Provider) {
	for _, suffix := range []string{stateCookieSuffix, userCookieSuffix, returnToCookieSuffix} {
		h.setFlowCookie(c, string(provider)+suffix, "", -1)
	}
}

// sanitizeReturnTo only accepts local paths; anything else falls back to
// the configured default to keep the callback from becoming an open redirect.
func (h *ConnectorHandler) sanitizeReturnTo(returnTo string) string {
	if strings.HasPrefix(returnTo, "/") && !strings.HasPrefix(returnTo, "//") {
		return returnTo
	}
	return h.oauthCfg.DefaultReturnTo
}

func (h *ConnectorHandler) redirectWithError(c *gin.Context, returnTo, code string) {
	c.Redirect(http.StatusFound, h.frontendURL(returnTo, url.Values{"connect_error": {code}}))
}

func (h *ConnectorHandler) frontendURL(returnTo string, query url.Values) string {
	path := h.sanitizeReturnTo(returnTo)
	base := strings.TrimSuffix(h.oauthCfg.FrontendBaseURL, "/")
	target := base + path
	if len(query) > 0 {
		separator := "?"
		if strings.Contains(path, "?") {
			separator = "&"
		}
		target += separator + query.Encode()
	}
	return target
}

func sameSiteMode(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
