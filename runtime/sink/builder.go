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
	"fmt"

	"go.uber.org/zap"

	asink "dirpx.dev/logmux/apis/sink"
	"dirpx.dev/logmux/apis/tick"
)

// Builder constructs Controllers for both inherited and path specifications.
type Builder struct {
	Log *zap.SugaredLogger
}

var _ asink.Builder = (*Builder)(nil)

// Initialize implements apis/sink.Builder.
func (b *Builder) Initialize(spec asink.Specification, t tick.Context) (asink.Controller, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Descriptor != nil {
		return newInheritedController(spec.Descriptor), nil
	}
	log := b.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c, err := newPathController(spec, t, log)
	if err != nil {
		return nil, fmt.Errorf("initialize path sink %q: %w", spec.Pattern, err)
	}
	return c, nil
}
