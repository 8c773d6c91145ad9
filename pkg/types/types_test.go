// SPDX-License-Identifier: MPL-2.0

package types_test

import (
	"errors"
	"testing"

	"hatk-cli/pkg/types"
)

func TestExitCode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    types.ExitCode
		wantErr bool
	}{
		{name: "success", code: 0, wantErr: false},
		{name: "generic failure", code: 1, wantErr: false},
		{name: "max", code: 255, wantErr: false},
		{name: "negative", code: -1, wantErr: true},
		{name: "too large", code: 256, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ExitCode(%d).Validate() error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode")
			}
		})
	}

	if !types.ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if types.ExitCode(2).IsSuccess() {
		t.Error("ExitCode(2).IsSuccess() = true, want false")
	}
}

func TestListenPort_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		port    types.ListenPort
		wantErr bool
	}{
		{name: "auto", port: 0, wantErr: false},
		{name: "common", port: 8501, wantErr: false},
		{name: "max", port: 65535, wantErr: false},
		{name: "negative", port: -1, wantErr: true},
		{name: "too large", port: 65536, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.port.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ListenPort(%d).Validate() error = %v, wantErr %v", tt.port, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrInvalidListenPort) {
				t.Errorf("error does not wrap ErrInvalidListenPort")
			}
		})
	}

	if !types.ListenPort(0).IsAuto() {
		t.Error("ListenPort(0).IsAuto() = false, want true")
	}
}
