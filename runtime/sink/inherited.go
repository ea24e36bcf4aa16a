/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package sink

import (
	asink "dirpx.dev/logmux/apis/sink"
	"dirpx.dev/logmux/apis/tick"
)

// inheritedController wraps a pre-opened, inherited descriptor (stdout or
// stderr). It never closes it (spec §3 invariant, §8 property 4) and never
// reopens it — rotation is a no-op for inherited sinks (spec §4.3 step 1).
type inheritedController struct {
	f asink.Descriptor
}

var _ asink.Controller = (*inheritedController)(nil)

func newInheritedController(f asink.Descriptor) *inheritedController {
	return &inheritedController{f: f}
}

// CurrentDescriptor always returns the fixed, inherited descriptor.
func (c *inheritedController) CurrentDescriptor(tick.Context) (asink.Descriptor, error) {
	return c.f, nil
}

// Close is a no-op: the engine never owns an inherited descriptor.
func (c *inheritedController) Close() error {
	return nil
}

// Invalidate is a no-op: an inherited descriptor is never reopened.
func (c *inheritedController) Invalidate() {}
