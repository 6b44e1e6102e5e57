package catalogkit

import (
	"errors"
	"net/http"
)

// Middleware provides HTTP middleware for catalog role and permission checks.
// It is a host side convenience; the service itself never listens on the
// network.
type Middleware struct {
	service      *Service
	getIdentity  func(*http.Request) Identity
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance. The identity extractor
// must return an identity the host has already authenticated; catalogkit does
// not verify credentials.
//
// Example:
//
//	mw := catalogkit.NewMiddleware(service,
//	    catalogkit.WithIdentityExtractor(func(r *http.Request) catalogkit.Identity {
//	        return catalogkit.GetCaller(r.Context())
//	    }),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getIdentity:  defaultGetIdentity,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithIdentityExtractor sets a custom function to extract the verified
// identity from a request.
func WithIdentityExtractor(fn func(*http.Request) Identity) MiddlewareOption {
	return func(m *Middleware) {
		m.getIdentity = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetIdentity(r *http.Request) Identity {
	return GetCaller(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoCaller):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case IsAuthorizationError(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case IsValidationError(err):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case IsNotFound(err):
		http.Error(w, "Not Found", http.StatusNotFound)
	case IsPaused(err):
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	case IsStateConflict(err), IsAlreadyExists(err), IsLimitReached(err):
		http.Error(w, "Conflict", http.StatusConflict)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// require wraps a handler with identity extraction, checker construction, and
// a guard predicate. On success the caller and checker are placed in context.
func (m *Middleware) require(check func(*Checker) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := m.getIdentity(r)
			if id.IsZero() {
				m.errorHandler(w, r, NewError(ErrNoCaller, "no identity on request"))
				return
			}

			checker, err := m.service.GetChecker(ctx, id)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if err := check(checker); err != nil {
				m.errorHandler(w, r, err)
				return
			}

			ctx = WithCaller(ctx, id)
			ctx = WithChecker(ctx, checker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates middleware that requires a specific role.
//
// Example:
//
//	router.With(mw.RequireRole(catalogkit.RoleCurator)).
//	    Post("/books", addBookHandler)
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return m.require(func(c *Checker) error {
		if !c.HasRole(role) {
			return NewError(ErrInsufficientPermissions, "missing required role").
				WithActor(c.Identity()).
				WithRole(role)
		}
		return nil
	})
}

// RequirePermission creates middleware that requires a specific permission.
//
// Example:
//
//	router.With(mw.RequirePermission(catalogkit.PermissionAddBook)).
//	    Post("/books", addBookHandler)
func (m *Middleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return m.require(func(c *Checker) error {
		if !c.Can(permission) {
			return NewError(ErrInsufficientPermissions, "missing required permission").
				WithActor(c.Identity())
		}
		return nil
	})
}

// RequireAnyPermission creates middleware that requires at least one of the
// specified permissions.
func (m *Middleware) RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return m.require(func(c *Checker) error {
		if !c.CanAny(permissions...) {
			return NewError(ErrInsufficientPermissions, "missing required permission").
				WithActor(c.Identity())
		}
		return nil
	})
}

// RequireSuperAdmin creates middleware that admits only the super admin.
//
// Example:
//
//	router.With(mw.RequireSuperAdmin()).Post("/governance/pause", pauseHandler)
func (m *Middleware) RequireSuperAdmin() func(http.Handler) http.Handler {
	return m.require(func(c *Checker) error {
		if !c.IsSuperAdmin() {
			return NewError(ErrNotSuperAdmin, "super admin required").WithActor(c.Identity())
		}
		return nil
	})
}

// RequireAdminPrivileges creates middleware that admits the super admin and
// admins.
func (m *Middleware) RequireAdminPrivileges() func(http.Handler) http.Handler {
	return m.require(func(c *Checker) error {
		if !c.HasAdminPrivileges() {
			return NewError(ErrInsufficientPermissions, "admin privileges required").
				WithActor(c.Identity())
		}
		return nil
	})
}

// RequireLibraryCard creates middleware that admits only identities holding a
// library card. Use it on read endpoints that serve catalog content.
//
// Example:
//
//	router.With(mw.RequireLibraryCard()).Get("/books/{bookID}", readBookHandler)
func (m *Middleware) RequireLibraryCard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := m.getIdentity(r)
			if id.IsZero() {
				m.errorHandler(w, r, NewError(ErrNoCaller, "no identity on request"))
				return
			}

			if !m.service.HasLibraryCard(ctx, id) {
				m.errorHandler(w, r, NewError(ErrNotFound, "no library card issued").
					WithIdentity(id))
				return
			}

			ctx = WithCaller(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadChecker creates middleware that loads the caller's Checker into context
// without enforcing anything. Use this when the handler does its own checks.
//
// Example:
//
//	router.With(mw.LoadChecker()).Get("/dashboard", dashboardHandler)
//
//	func dashboardHandler(w http.ResponseWriter, r *http.Request) {
//	    checker := catalogkit.FromContext(r.Context())
//	    if checker.CanManageRoles() {
//	        // Show role management features
//	    }
//	}
func (m *Middleware) LoadChecker() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := m.getIdentity(r)
			if id.IsZero() {
				next.ServeHTTP(w, r)
				return
			}

			checker, err := m.service.GetChecker(ctx, id)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithChecker(ctx, checker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InjectAuditContext creates middleware that extracts audit information from
// the request and adds it to the context, so audit rows carry the request's
// IP address, user agent, and request ID.
//
// Example:
//
//	router.Use(mw.InjectAuditContext())
func (m *Middleware) InjectAuditContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := r.Header.Get("X-Forwarded-For")
			if ip == "" {
				ip = r.Header.Get("X-Real-IP")
			}
			if ip == "" {
				ip = r.RemoteAddr
			}
			ctx = WithIPAddress(ctx, ip)

			ctx = WithUserAgent(ctx, r.UserAgent())

			requestID := r.Header.Get("X-Request-ID")
			if requestID != "" {
				ctx = WithRequestID(ctx, requestID)
			}

			id := m.getIdentity(r)
			if !id.IsZero() {
				ctx = WithCaller(ctx, id)
				ctx = WithActor(ctx, id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
