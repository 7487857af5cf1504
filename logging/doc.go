// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging writes a structured log line for every API query,
// using github.com/apex/log. Install a Handler on a client's handler
// group:
//
//	cl.Handlers = &apix.HandlerGroup{}
//	logging.Install(cl.Handlers, log.Log)
//
// Each query logs at debug level when it starts, and at info level when
// it succeeds or warn level when it fails.
package logging
