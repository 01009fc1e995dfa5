// Package smc provides types, interfaces, and helpers for working with the
// Stonesoft/Forcepoint Management Center (SMC) REST API.
//
// # Overview
//
// The smc package defines the domain types (e.g., Host, Group, Engine) and
// the interfaces for resource-oriented clients (e.g., HostsClient,
// GroupsClient, EnginesClient) plus the generic ElementsClient used to find
// any named element. A concrete implementation of these clients is provided
// by the smcclient package, which wires configuration, transport, login, and
// entry point discovery. Most consumers should import smcclient to construct
// a client and then interact with the resource client interfaces exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/smc-go/smc/pkg/smc"
//	  "github.com/smc-go/smc/pkg/smcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := smcclient.New(ctx, &smc.Config{
//	    Endpoint: "http://smc.example.com:8082",
//	    APIKey:   "xxxxxxxxxxxxx",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Logout(ctx)
//
//	  refs, err := cli.Elements().Resolve(ctx, "ami", "host", true)
//	  if err != nil { log.Fatal(err) }
//	  _ = refs
//	}
//
// # Sessions
//
// A client owns one authenticated session (a JSESSIONID cookie obtained at
// login) and there is no package-level shared state: create as many clients
// as you need sessions. Every operation fails with ErrNotLoggedIn after
// Logout.
//
// # Errors
//
// API errors are represented by APIError; name lookups that need a unique
// element report ResolutionError. Helpers such as IsNotFound, IsDuplicate,
// IsUnauthorized, and IsResolution make it easy to branch on common cases.
package smc
