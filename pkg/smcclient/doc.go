// Package smcclient constructs ready-to-use SMC API clients.
//
// New performs the full login sequence: endpoint normalization, API version
// discovery against "<endpoint>/api", session login, and entry point
// loading. The returned smc.Client keeps its session in an internal cookie
// jar; there is no process-global session state, so independent clients can
// hold independent sessions.
//
//	cli, err := smcclient.NewWithAPIKey(ctx, "http://smc.example.com:8082", apiKey)
//	if err != nil {
//	    return err
//	}
//	defer cli.Logout(ctx)
//
// NewFromFile reads credentials from an .smcrc file and the SMC_*
// environment, matching the lookup the SMC's own tooling performs.
package smcclient
