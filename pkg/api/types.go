// Package api holds the data contracts exchanged with the module hosting API
// and the validators that turn untyped JSON into those contracts.
package api

// Function is an exported callable of a deployed module.
type Function struct {
	Function  string `json:"function" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// Module is a deployed WebAssembly module. Functions keep declaration order.
type Module struct {
	ID         int64      `json:"id"`
	ModuleHash string     `json:"module_hash"`
	Functions  []Function `json:"functions"`
}

// Clone returns a deep copy of the module.
func (m Module) Clone() Module {
	out := m
	if m.Functions != nil {
		out.Functions = make([]Function, len(m.Functions))
		copy(out.Functions, m.Functions)
	}
	return out
}

// Function returns the exported function with the given name.
func (m Module) Function(name string) (Function, bool) {
	for _, fn := range m.Functions {
		if fn.Function == name {
			return fn, true
		}
	}
	return Function{}, false
}

// CloneModules deep copies a module list, preserving nil.
func CloneModules(modules []Module) []Module {
	if modules == nil {
		return nil
	}
	out := make([]Module, len(modules))
	for i, m := range modules {
		out[i] = m.Clone()
	}
	return out
}

// FunctionResult is the outcome of calling a function.
type FunctionResult struct {
	ReturnValue []float64 `json:"return_value"`
}

// ModulesResponse is the envelope of a module listing request.
type ModulesResponse struct {
	Modules []Module `json:"modules"`
}

// LoginResponse carries the session token issued on login.
type LoginResponse struct {
	JWT string `json:"jwt" validate:"required"`
}

// CreditsResponse reports the remaining wallet credits of the caller.
type CreditsResponse struct {
	Credits int64 `json:"credits"`
}

// DeployModuleResponse is returned once a module upload is stored.
type DeployModuleResponse struct {
	ModHash string `json:"mod_hash" validate:"required"`
}

// ErrorResponse is the envelope of every failed API request.
type ErrorResponse struct {
	Error string `json:"error" validate:"required"`
}

// CallFunctionRequest is the body of a function call.
type CallFunctionRequest struct {
	Params []float64 `json:"params"`
}
