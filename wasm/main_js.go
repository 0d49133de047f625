//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/sierpinski/api"
	"github.com/voxelsplace/sierpinski/meshpack"
)

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func sierpinskiGLB(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing level")
	}
	out, err := api.GenerateGLB(args[0].Int())
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func sierpinskiPack(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing levels array")
	}
	levels := make([]int, args[0].Length())
	for i := range levels {
		levels[i] = args[0].Index(i).Int()
	}
	out, err := api.PackLevels(levels, meshpack.CompZstd)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func unpackSierpack(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	files, err := api.UnpackToGLB(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	// return an object mapping names->Uint8Array
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, toUint8Array(b))
	}
	return result
}

func main() {
	js.Global().Set("sierpinskiGLB", js.FuncOf(sierpinskiGLB))
	js.Global().Set("sierpinskiPack", js.FuncOf(sierpinskiPack))
	js.Global().Set("unpackSierpack", js.FuncOf(unpackSierpack))
	select {}
}
