// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name string
		got  time.Duration
		min  time.Duration
		max  time.Duration
	}{
		{"PlanTimeout", PlanTimeout, time.Second, time.Minute},
		{"RunTimeout", RunTimeout, time.Minute, 2 * time.Hour},
		{"HandoffTimeout", HandoffTimeout, time.Minute, RunTimeout},
		{"CompilerProbeTimeout", CompilerProbeTimeout, time.Second, PlanTimeout},
		{"ConfigureHandlerTimeout", ConfigureHandlerTimeout, time.Second, 2 * time.Minute},
		{"ServerShutdownTimeout", ServerShutdownTimeout, time.Second, time.Minute},
		{"HTTPClientTimeout", HTTPClientTimeout, time.Second, time.Minute},
		{"OCIPushTimeout", OCIPushTimeout, time.Minute, time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got < tt.min || tt.got > tt.max {
				t.Errorf("%s = %v, want between %v and %v", tt.name, tt.got, tt.min, tt.max)
			}
		})
	}
}

func TestConfigureBuildTimeoutLessThanHandler(t *testing.T) {
	if ConfigureBuildTimeout >= ConfigureHandlerTimeout {
		t.Errorf("ConfigureBuildTimeout (%v) should be less than ConfigureHandlerTimeout (%v)",
			ConfigureBuildTimeout, ConfigureHandlerTimeout)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadHeaderTimeout >= ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should be less than ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
	if ServerWriteTimeout < ConfigureHandlerTimeout {
		t.Errorf("ServerWriteTimeout (%v) should cover ConfigureHandlerTimeout (%v)",
			ServerWriteTimeout, ConfigureHandlerTimeout)
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}
	if HTTPResponseHeaderTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPResponseHeaderTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPResponseHeaderTimeout, HTTPClientTimeout)
	}
}

func TestMatrixConcurrencyPositive(t *testing.T) {
	if MatrixConcurrency < 1 {
		t.Errorf("MatrixConcurrency = %d, want at least 1", MatrixConcurrency)
	}
}
