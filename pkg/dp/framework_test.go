package dp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameworkConfigure(t *testing.T) {
	testCases := []struct {
		name   string
		id     uint16
		class  Class
		coeffs []float32
		err    error
	}{
		{"pi", 0, ClassELPPI, []float32{1, 2, 3, 4}, nil},
		{"iir 2p2z", 3, ClassELPIIR2P2Z, make([]float32, 7), nil},
		{"bad id", 16, ClassELPPI, []float32{1, 2, 3, 4}, ErrModuleID},
		{"bad class", 1, Class(99), nil, ErrModuleClass},
		{"bad count", 1, ClassDCL3P3Z, make([]float32, 8),
			&CoeffCountError{Class: ClassDCL3P3Z, Expected: 9, Actual: 8}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := New(0)
			err := f.Configure(tc.id, tc.class, tc.coeffs)
			require.Equal(t, tc.err, err)
			m, ok := f.Module(tc.id)
			if tc.err == ErrModuleID {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, tc.err == nil, m.Configured)
			if tc.err == nil {
				require.Equal(t, tc.coeffs, m.Coeffs)
				require.Equal(t, tc.class, m.Class)
			}
		})
	}
}

func TestFrameworkModuleCopy(t *testing.T) {
	f := New(2)
	require.Equal(t, 2, f.NumModules())
	require.NoError(t, f.Configure(1, ClassDCLPI, []float32{1, 1, 1, 1}))
	m, _ := f.Module(1)
	m.Coeffs[0] = 9
	again, _ := f.Module(1)
	require.Equal(t, float32(1), again.Coeffs[0])
}
