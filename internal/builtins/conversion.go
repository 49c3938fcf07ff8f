package builtins

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// RegisterConversion registers CDBL, CINT, CSNG (type conversion) and
// CVD/CVI/CVS, MKD$/MKI$/MKS$ (binary packing for random-access records,
// §4.G, §8 round-trip property). All are pure.
func RegisterConversion(r *Registry) {
	r.Register("CDBL", biCDbl, CategoryConversion, true)
	r.Register("CINT", biCInt, CategoryConversion, true)
	r.Register("CSNG", biCSng, CategoryConversion, true)
	r.Register("CVD", biCVD, CategoryConversion, true)
	r.Register("CVI", biCVI, CategoryConversion, true)
	r.Register("CVS", biCVS, CategoryConversion, true)
	r.Register("MKD$", biMKD, CategoryConversion, true)
	r.Register("MKI$", biMKI, CategoryConversion, true)
	r.Register("MKS$", biMKS, CategoryConversion, true)
}

func biCDbl(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return double(f), nil
}

func biCInt(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return runtime.Coerce(single(f), ast.TypeInteger)
}

func biCSng(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return single(f), nil
}

// biCVI unpacks a 2-byte little-endian signed integer (§4.G, §8).
func biCVI(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(s) < 2 {
		return nil, typeMismatch("CVI requires a 2-byte string")
	}
	return integer(int(int16(binary.LittleEndian.Uint16([]byte(s[:2]))))), nil
}

// biCVS unpacks a 4-byte little-endian IEEE single.
func biCVS(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(s) < 4 {
		return nil, typeMismatch("CVS requires a 4-byte string")
	}
	bits := binary.LittleEndian.Uint32([]byte(s[:4]))
	return single(float64(math.Float32frombits(bits))), nil
}

// biCVD unpacks an 8-byte little-endian IEEE double.
func biCVD(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(s) < 8 {
		return nil, typeMismatch("CVD requires an 8-byte string")
	}
	bits := binary.LittleEndian.Uint64([]byte(s[:8]))
	return double(math.Float64frombits(bits)), nil
}

func biMKI(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(int16(n)))
	return str(string(buf)), nil
}

func biMKS(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(f)))
	return str(string(buf)), nil
}

func biMKD(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	return str(string(buf)), nil
}
