// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package services provides suture service wrappers for Folio's long-running
components.

  - HTTPServerService runs the API server and shuts it down gracefully when
    the supervisor stops it.
  - MaintenanceService runs periodic housekeeping tasks: expiring catalog
    cache entries and publishing the active session count.

Each wrapper implements suture.Service (Serve(ctx) error) and fmt.Stringer
so supervisor events name the service.

Example:

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	tree.AddMaintenanceService(services.NewMaintenanceService(time.Minute, logger,
	    services.MaintenanceTask{Name: "catalog-cache", Run: purge},
	))
*/
package services
