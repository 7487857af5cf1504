// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout bounds how long an API query may wait for its HTTP
// response. A generic interface for timeout policies is provided,
// Policy, along with several useful policy generating functions and
// built-in policies. Install plugs a policy into a client's event
// handler group.
package timeout
