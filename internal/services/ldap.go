package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/utils"
)

// LDAPUser is the directory view of an authenticated account.
type LDAPUser struct {
	Handle      string
	DisplayName string
	Email       string
}

// LDAPService authenticates credentials against the team directory. Each
// call dials a fresh connection: service bind, search for the account, then
// bind again as the found DN with the supplied password.
type LDAPService interface {
	Authenticate(ctx context.Context, handle, password string) (*LDAPUser, error)
	Enabled() bool
}

type ldapService struct {
	log *logger.Logger

	serverURL    string
	baseDN       string
	bindDN       string
	bindPassword string
	userFilter   string
}

func NewLDAPService(log *logger.Logger) LDAPService {
	serviceLog := log.With("service", "LDAPService")

	return &ldapService{
		log:          serviceLog,
		serverURL:    utils.GetEnv("LDAP_SERVER_URL", "", log),
		baseDN:       utils.GetEnv("LDAP_BASE_DN", "", log),
		bindDN:       utils.GetEnv("LDAP_BIND_DN", "", log),
		bindPassword: utils.GetEnv("LDAP_BIND_PASSWORD", "", log),
		userFilter:   utils.GetEnv("LDAP_USER_FILTER", "(sAMAccountName=%s)", log),
	}
}

// Enabled reports whether directory auth is configured at all. When it is
// not, login falls back to local credentials only.
func (ls *ldapService) Enabled() bool {
	return strings.TrimSpace(ls.serverURL) != ""
}

func (ls *ldapService) Authenticate(ctx context.Context, handle, password string) (*LDAPUser, error) {
	if !ls.Enabled() {
		return nil, fmt.Errorf("LDAP is not configured")
	}
	if password == "" {
		// An empty password would turn the user bind into an anonymous bind,
		// which some directories accept.
		return nil, fmt.Errorf("empty password")
	}

	conn, err := ldap.DialURL(ls.serverURL)
	if err != nil {
		ls.log.Error("Failed to dial LDAP server", "error", err)
		return nil, fmt.Errorf("Failed to dial LDAP server: %w", err)
	}
	defer conn.Close()

	if ls.bindDN != "" {
		if err := conn.Bind(ls.bindDN, ls.bindPassword); err != nil {
			ls.log.Error("LDAP service bind failed", "error", err)
			return nil, fmt.Errorf("LDAP service bind failed: %w", err)
		}
	}

	filter := fmt.Sprintf(ls.userFilter, ldap.EscapeFilter(handle))
	searchRequest := ldap.NewSearchRequest(
		ls.baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		filter,
		[]string{"dn", "cn", "mail", "sAMAccountName"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		ls.log.Error("LDAP search failed", "filter", filter, "error", err)
		return nil, fmt.Errorf("LDAP search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("account not found in directory")
	}

	entry := result.Entries[0]
	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, fmt.Errorf("invalid directory credentials")
	}

	user := &LDAPUser{
		Handle:      entry.GetAttributeValue("sAMAccountName"),
		DisplayName: entry.GetAttributeValue("cn"),
		Email:       entry.GetAttributeValue("mail"),
	}
	if user.Handle == "" {
		user.Handle = handle
	}
	return user, nil
}
