// Package catalogkit provides the governance and authorization core for a
// shared book catalog.
//
// CatalogKit manages a fixed role hierarchy (super admin, admins, moderators,
// curators) over a single governed catalog: who may add, update, and remove
// books, who may grant and revoke roles, and how control of the catalog itself
// changes hands. All state lives in PostgreSQL through DBKit.
//
// # Core Concepts
//
// Identity: An opaque caller identifier (an address, a key fingerprint, a
// user ID). CatalogKit never interprets it; the host authenticates callers
// and places the identity in the request context with WithCaller.
//
// Role: One of super_admin, admin, moderator, or curator. Each role except
// super admin has a fixed membership capacity. Role permissions come from the
// Registry; the default registry gives admins full book and role management
// and curators book add/update rights.
//
// Permission: A dot-separated string like "books.add" or "roles.manage".
// Supports wildcards: "*" (all), "books.*" (all book actions), "*.add"
// (the add action on all resources).
//
// # Key Features
//
//   - Single governed state: one super admin, capped admin/moderator/curator
//     sets, and a pause switch, stored as a singleton row
//   - Timelocked succession: super admin transfer is a two-phase
//     initiate/confirm handshake with a mandatory waiting period
//   - Emergency recovery: admins can vote to replace an unresponsive super
//     admin once a configured threshold of votes is reached
//   - Pause switch: the super admin can freeze catalog writes without
//     touching role assignments
//   - Strict input validation: book metadata is length-bounded, printable
//     ASCII, and screened for injection patterns before it is stored
//   - Detailed audit logging: who, what, when, plus request metadata
//   - DBKit integration: uses your existing database connection
//
// # Basic Usage
//
//	// 1. Connect and create the service
//	db, err := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service := catalogkit.NewService(db,
//	    catalogkit.WithBootstrapIdentity("owner-key"),
//	)
//
//	// 2. Run migrations
//	if err := db.Migrate(ctx, service.Migrations()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 3. Initialize governance (bootstrap identity becomes super admin)
//	ctx = catalogkit.WithCaller(ctx, "owner-key")
//	if err := service.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 4. Build the hierarchy
//	service.AddAdmin(ctx, "admin-key")
//	service.AddCurator(ctx, "curator-key")
//
//	// 5. Work with the catalog
//	curatorCtx := catalogkit.WithCaller(ctx, "curator-key")
//	err = service.AddBook(curatorCtx, uuid.New(),
//	    "The Go Programming Language", "Donovan & Kernighan",
//	    "QmYwAPJzv5CZsnAzt8auVZRnHEKvQcGnWFqbQYyTuyZKe3", "reference")
//
//	// 6. Check permissions
//	if service.CanAddBooks(ctx, "curator-key") {
//	    // identity holds books.add
//	}
//
// # Middleware Usage
//
//	mw := catalogkit.NewMiddleware(service)
//
//	router.Use(mw.InjectAuditContext())
//
//	router.With(mw.RequirePermission(catalogkit.PermissionAddBook)).
//	    Post("/books", addBookHandler)
//
//	router.With(mw.RequireSuperAdmin()).
//	    Post("/governance/pause", pauseHandler)
//
// # Succession and Recovery
//
// Control of the catalog changes hands in one of two ways. The current super
// admin can hand over voluntarily:
//
//	service.InitiateTransfer(superCtx, "successor-key")
//	// ... timelock elapses ...
//	service.ConfirmTransfer(superCtx)
//
// Or, if the super admin is gone, admins vote among themselves:
//
//	executed, _ := service.InitiateRecovery(adminCtx, "successor-key")
//	if !executed {
//	    executed, _ = service.VoteRecovery(otherAdminCtx)
//	}
//
// Both paths validate the candidate (non-empty, not the current super admin,
// not an existing admin, not the reserved system identity) and are fully
// audited.
//
// CancelRecovery is reserved to the current super admin, the identity the
// episode exists to replace, so a compromised super admin can cancel a
// recovery in progress. The cancel right intentionally mirrors the voluntary
// transfer's: it keeps a hasty quorum reversible while the legitimate holder
// still controls the key, at the cost of not helping against a fully
// compromised one.
//
// # Audit Log
//
// Every mutation is logged with:
//   - Actor (who made the change)
//   - Action and subject
//   - Human-readable summary
//   - Timestamp
//   - Request metadata (IP, user agent, request ID)
//
// Entries are queried with GetAuditLog and an AuditLogFilter.
package catalogkit
