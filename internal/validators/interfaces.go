// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks caller input before it reaches the services'
// business logic.
//
// Two validators are provided:
//   - [TransactionValidator] for new transactions and list queries;
//   - [UserValidator] for registration and login requests.
//
// Every validator returns one sentinel error per rule, so the service layer
// can map them onto its invalid-argument kind with errors.Is.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
