//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/pixelito/voxmesh/api"
)

func bytesFromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

// grid2glb(gridBytes, greedy) returns .glb bytes.
func grid2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing grid bytes")
	}
	greedy := true
	if len(args) > 1 {
		greedy = args[1].Truthy()
	}
	out, err := api.GridToGLB(bytesFromJS(args[0]), greedy)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func compareMeshers(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing grid bytes")
	}
	c, err := api.Compare(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	stats := func(quads, vertices, triangles int) map[string]any {
		return map[string]any{"quads": quads, "vertices": vertices, "triangles": triangles}
	}
	return js.ValueOf(map[string]any{
		"naive":     stats(c.Naive.Quads, c.Naive.Vertices, c.Naive.Triangles),
		"greedy":    stats(c.Greedy.Quads, c.Greedy.Vertices, c.Greedy.Triangles),
		"reduction": c.Reduction(),
	})
}

func applyEdits(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing grid or edit bytes")
	}
	out, err := api.ApplyEdits(bytesFromJS(args[0]), bytesFromJS(args[1]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func packGrids(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing files object")
	}
	filesObj := args[0]
	files := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", filesObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		files[k] = bytesFromJS(filesObj.Get(k))
	}
	out, err := api.PackGrids(files)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func unpackGrids(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackToMemory(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, bytesToJS(b))
	}
	return result
}

func main() {
	js.Global().Set("grid2glb", js.FuncOf(grid2glb))
	js.Global().Set("compareMeshers", js.FuncOf(compareMeshers))
	js.Global().Set("applyEdits", js.FuncOf(applyEdits))
	js.Global().Set("packGrids", js.FuncOf(packGrids))
	js.Global().Set("unpackGrids", js.FuncOf(unpackGrids))
	select {}
}
