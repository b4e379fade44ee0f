// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor provides process supervision for Folio using suture v4.

The supervisor tree manages every long-running service with Erlang/OTP-style
restart semantics, failure isolation and graceful shutdown.

# Overview

	RootSupervisor ("folio")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── MaintenanceService (catalog cache expiry, session gauge)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A maintenance task that keeps failing backs off inside its own layer while
the API keeps answering lookups.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	tree.AddMaintenanceService(services.NewMaintenanceService(time.Minute, logger, tasks...))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

# Configuration

Default values match suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

Supervisor events (start, stop, failure, backoff) are logged through the
sutureslog adapter, which in Folio writes to the zerolog logger via
logging.NewSlogLogger.
*/
package supervisor
