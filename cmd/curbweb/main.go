// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// The curbweb binary serves the curb parking marketplace REST APIs.
// Run it without arguments to start the web server or see the db
// sub-command for the database provisioning actions.
package main

import "github.com/curbweb/curbweb/cmd/curbweb/command"

func main() {
	command.Execute()
}
