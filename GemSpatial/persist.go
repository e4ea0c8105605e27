package GemSpatial

import (
	"fmt"
	"strconv"
	"strings"
)

// 持久化键名，由外部协作方写到宝石所属文档对象上
const (
	KeyX1    = "x1_data"
	KeyX2    = "x2_data"
	KeyY1    = "y1_data"
	KeyY2    = "y2_data"
	KeyZ1    = "z1_data"
	KeyZ2    = "z2_data"
	KeyScale = "scale_data"
)

// 编码为七组文本三元组，格式 [faceIndex, u, v] / [width, length, depth]
// 浮点使用完整精度
func (d *FrameData) Encode() map[string]string {
	enc := func(s AxialSample) string {
		return fmt.Sprintf("[%d, %s, %s]",
			s.FaceIndex,
			strconv.FormatFloat(s.U, 'g', -1, 64),
			strconv.FormatFloat(s.V, 'g', -1, 64))
	}
	return map[string]string{
		KeyX1: enc(d.X1),
		KeyX2: enc(d.X2),
		KeyY1: enc(d.Y1),
		KeyY2: enc(d.Y2),
		KeyZ1: enc(d.Z1),
		KeyZ2: enc(d.Z2),
		KeyScale: fmt.Sprintf("[%s, %s, %s]",
			strconv.FormatFloat(d.Width, 'g', -1, 64),
			strconv.FormatFloat(d.Length, 'g', -1, 64),
			strconv.FormatFloat(d.Depth, 'g', -1, 64)),
	}
}

// 从键值文本解码，任何键缺失或格式错误都返回ErrFrameDataCorrupt
func DecodeFrameData(kv map[string]string) (*FrameData, error) {
	sample := func(key string) (AxialSample, error) {
		a, b, c, err := parseTriple(kv, key)
		if err != nil {
			return AxialSample{}, err
		}
		return AxialSample{FaceIndex: int(a), U: b, V: c}, nil
	}

	var d FrameData
	var err error
	if d.X1, err = sample(KeyX1); err != nil {
		return nil, err
	}
	if d.X2, err = sample(KeyX2); err != nil {
		return nil, err
	}
	if d.Y1, err = sample(KeyY1); err != nil {
		return nil, err
	}
	if d.Y2, err = sample(KeyY2); err != nil {
		return nil, err
	}
	if d.Z1, err = sample(KeyZ1); err != nil {
		return nil, err
	}
	if d.Z2, err = sample(KeyZ2); err != nil {
		return nil, err
	}
	if d.Width, d.Length, d.Depth, err = parseTriple(kv, KeyScale); err != nil {
		return nil, err
	}
	return &d, nil
}

func parseTriple(kv map[string]string, key string) (float64, float64, float64, error) {
	raw, ok := kv[key]
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing key %s", ErrFrameDataCorrupt, key)
	}
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return 0, 0, 0, fmt.Errorf("%w: key %s not bracketed: %q", ErrFrameDataCorrupt, key, raw)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: key %s expects 3 values, got %d", ErrFrameDataCorrupt, key, len(parts))
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: key %s value %q: %v", ErrFrameDataCorrupt, key, p, err)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}
