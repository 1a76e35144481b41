// Package host loads parser modules and hands out their parse results.
//
// A Loader opens one module, resolves its full capability set once and
// either becomes valid or stays invalid with a queryable last error. Parse
// calls return a *Handle that owns the resulting tree until it is released,
// exactly once, through the loader that produced it. WithFile and WithMemory
// scope a handle to a callback and release it on every exit path.
//
// Misuse, such as calling capabilities on an invalid loader or releasing a
// handle twice, panics with a *errors.ContractViolation.
package host
