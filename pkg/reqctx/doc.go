// Package reqctx carries request-scoped values through context.Context.
//
// HTTP middleware stores RequestMeta for every request, authentication
// claims once a bearer token has been verified, and trace identifiers when
// tracing is enabled. Services and the logging handler read them back with
// the typed getters:
//
//	meta, ok := reqctx.RequestMetaFromContext(ctx)
//	userID, ok := reqctx.UserIDFromContext(ctx)
//	role := reqctx.RoleFromContext(ctx)
//
// All keys are unexported so no other package can collide with them.
package reqctx
