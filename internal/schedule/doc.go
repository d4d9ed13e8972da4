// Package schedule is the scheduling engine's hub: a canonical Schedule
// model with bidirectional translation to free-text phrases (Parse/Describe)
// and five-field cron expressions (Cron/FromCron).
//
// Everything here is a pure computation over in-memory values. Resolvers
// report failure via ErrNotRecognized; the parser and both cron directions
// are total and fall back to the KindUnparsed variant instead of erroring,
// so a caller can always keep rendering the user's input.
package schedule
