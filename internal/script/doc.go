// Package script runs Lua scripts against byte strings.
//
// Scripts run in a restricted gopher-lua state: only the base, table, string
// and math libraries are opened, file loading functions are removed, and
// print writes to the configured output. The global bstr module exposes the
// string engine:
//
//	local s = bstr.new("  one, two  ")
//	s:strip():upper()
//	for _, part in ipairs(s:split(", ")) do
//	    print(part, #part)
//	end
//	print(s:apply("find", "TWO"))
//
// Offsets are zero-based and ranges are half-open, as in the engine.
package script
