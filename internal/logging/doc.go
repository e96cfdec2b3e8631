// Package logging provides structured logging for todolist.
//
// It wraps log/slog with a JSON handler and writes to {dir}/debug.log so the
// terminal UI never shares its screen with log output. Raw API payloads are
// logged at DEBUG; this is the diagnostic channel for fetched users and tasks
// and for failed deletes.
//
//	logger, err := logging.NewLogger(dir, "DEBUG", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithUser(3).Info("tasks replaced", "count", 20)
//
// Use [NopLogger] in tests.
package logging
