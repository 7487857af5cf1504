// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from API query execution as
// transient or non-transient. This is handy for callers writing their
// own retry loops on top of apix, and for other purposes such as
// bucketing error metrics.
//
// Package transient depends only on the standard library, so it doesn't
// bring any significant dependencies when imported as a standalone
// package.
package transient
