package kernsim

import "context"

// Runtime controls the background parts of the simulation.
type Runtime struct {
	service *Service
}

// Start launches the completion listener and the device worker.
func (r *Runtime) Start(ctx context.Context) error {
	s := r.service
	s.logger.Info("Kernel simulation starting")
	s.listener.Start()
	if err := s.driver.Start(ctx); err != nil {
		return err
	}
	s.logger.Info("Device driver initialized")
	return nil
}

// Shutdown stops the device worker, waits for it to exit and then stops the
// completion listener.
func (r *Runtime) Shutdown() {
	s := r.service
	s.driver.Stop()
	s.listener.Stop()
	s.logger.Info("Kernel simulation shutting down")
}
