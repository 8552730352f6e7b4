// Package processor is the dispatch and reconciliation controller. It
// classifies an incoming path by directory convention, unpacks archives,
// routes the request to the matching media handler, reconciles the handler's
// outcome, applies the source-retention policy, and reports the result
// through the notification service.
package processor
