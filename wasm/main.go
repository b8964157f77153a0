// Copyright © 2018 The ELPS authors

//go:build js && wasm

// Command wasm exposes the interpreter to javascript as the global function
// rootsReadEval(source, callback).  Each call evaluates source in a fresh
// environment and then calls callback.resolve with the printed results or
// callback.reject with the error message.
package main

import (
	"log"
	"syscall/js"

	"github.com/luthersystems/roots/lisputil"
)

func JSReadEval(this js.Value, vals []js.Value) interface{} {
	if len(vals) != 2 {
		log.Printf("invalid number argument: %v", len(vals))
		return nil
	}
	source := vals[0].String()
	callback := vals[1]
	out, err := lisputil.ReadEval(source)
	if err != nil {
		callback.Call("reject", js.ValueOf(err.Error()))
	} else {
		callback.Call("resolve", js.ValueOf(out))
	}
	return nil
}

func main() {
	js.Global().Set("rootsReadEval", js.FuncOf(JSReadEval))

	// block forever so the exported function stays callable
	done := make(chan struct{})
	<-done
}
