// Package shutdown turns SIGINT and SIGTERM into a stop channel and runs
// cleanup hooks once the process is stopping.
//
// Usage:
//
//	h := shutdown.NewHandler(10*time.Second, shutdown.WithLogger(log))
//	h.Listen()
//	go func() { errCh <- srv.Serve(h.Stop()) }()
//	err := h.Wait()
package shutdown
