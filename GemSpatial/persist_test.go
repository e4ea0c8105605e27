package GemSpatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrameData() *FrameData {
	return &FrameData{
		X1: AxialSample{FaceIndex: 0, U: 0.125, V: -3.5},
		X2: AxialSample{FaceIndex: 1, U: 1e-7, V: 2},
		Y1: AxialSample{FaceIndex: 2, U: 0.333333333333333, V: 0},
		Y2: AxialSample{FaceIndex: 3, U: -1, V: -1},
		Z1: AxialSample{FaceIndex: 4, U: 6.283185307179586, V: 0.5},
		Z2: AxialSample{FaceIndex: 5, U: 0, V: 0},
		Width: 2, Length: 4.25, Depth: 6.000000001,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := sampleFrameData()
	kv := d.Encode()
	require.Len(t, kv, 7)
	assert.Equal(t, "[0, 0.125, -3.5]", kv[KeyX1])

	got, err := DecodeFrameData(kv)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDecodeMissingKey(t *testing.T) {
	kv := sampleFrameData().Encode()
	delete(kv, KeyZ2)
	_, err := DecodeFrameData(kv)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFrameDataCorrupt)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"无中括号": "1, 2, 3",
		"缺少分量": "[1, 2]",
		"多余分量": "[1, 2, 3, 4]",
		"非数值":  "[1, abc, 3]",
		"空白":   "   ",
	}
	for name, raw := range cases {
		kv := sampleFrameData().Encode()
		kv[KeyY1] = raw
		_, err := DecodeFrameData(kv)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrFrameDataCorrupt, name)
	}
}

func TestDecodeToleratesWhitespace(t *testing.T) {
	kv := sampleFrameData().Encode()
	kv[KeyX1] = "  [ 0 ,  0.125 , -3.5 ]  "
	got, err := DecodeFrameData(kv)
	require.NoError(t, err)
	assert.Equal(t, sampleFrameData().X1, got.X1)
}
