package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/bytestr/internal/app"
	"github.com/dshills/bytestr/internal/engine/bytestr"
)

// ModuleName is the global the string module is installed as.
const ModuleName = "bstr"

const typeName = "bstr.String"

var stringMethods = map[string]lua.LGFunction{
	"len":          strLen,
	"cap":          strCap,
	"empty":        strEmpty,
	"at":           strAt,
	"set":          strSet,
	"append":       strAppend,
	"erase":        strErase,
	"reverse":      strReverse,
	"lower":        strLower,
	"upper":        strUpper,
	"strip":        strStrip,
	"replace_char": strReplaceChar,
	"replace":      strReplace,
	"find":         strFind,
	"count":        strCount,
	"split":        strSplit,
	"equal":        strEqual,
	"compare":      strCompare,
	"clone":        strClone,
	"cstring":      strCString,
	"apply":        strApply,
}

// Register installs the bstr module and the string userdata type into L.
func Register(L *lua.LState) {
	mt := L.NewTypeMetatable(typeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), stringMethods))
	L.SetField(mt, "__tostring", L.NewFunction(strToString))
	L.SetField(mt, "__len", L.NewFunction(strLen))
	L.SetField(mt, "__eq", L.NewFunction(strEqual))
	L.SetField(mt, "__concat", L.NewFunction(strConcat))

	mod := L.NewTable()
	L.SetField(mod, "new", L.NewFunction(modNew))
	L.SetField(mod, "join", L.NewFunction(modJoin))
	L.SetField(mod, "compare", L.NewFunction(modCompare))
	L.SetField(mod, "ops", L.NewFunction(modOps))
	L.SetField(mod, "not_found", lua.LNumber(bytestr.NotFound))
	L.SetGlobal(ModuleName, mod)
}

// push wraps s in a userdata carrying the string metatable.
func push(L *lua.LState, s *bytestr.String) {
	ud := L.NewUserData()
	ud.Value = s
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	L.Push(ud)
}

// check returns the string userdata at stack position n.
func check(L *lua.LState, n int) *bytestr.String {
	ud := L.CheckUserData(n)
	if s, ok := ud.Value.(*bytestr.String); ok {
		return s
	}
	L.ArgError(n, "bstr string expected")
	return nil
}

// operand accepts a bstr string or a Lua string at position n.
func operand(L *lua.LState, n int) *bytestr.String {
	switch v := L.Get(n).(type) {
	case *lua.LUserData:
		if s, ok := v.Value.(*bytestr.String); ok {
			return s
		}
	case lua.LString:
		return bytestr.FromString(string(v))
	}
	L.TypeError(n, lua.LTString)
	return nil
}

func byteArg(L *lua.LState, n int) byte {
	s := L.CheckString(n)
	if len(s) != 1 {
		L.ArgError(n, "single byte expected")
	}
	return s[0]
}

// bstr.new([s]) -> string
func modNew(L *lua.LState) int {
	if L.GetTop() == 0 {
		push(L, bytestr.New())
		return 1
	}
	push(L, operand(L, 1).Clone())
	return 1
}

// bstr.join(parts, sep) -> string
func modJoin(L *lua.LState) int {
	tbl := L.CheckTable(1)
	sep := operand(L, 2)

	parts := make([]*bytestr.String, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LString:
			parts = append(parts, bytestr.FromString(string(v)))
		case *lua.LUserData:
			s, ok := v.Value.(*bytestr.String)
			if !ok {
				L.RaiseError("join: element %d is not a string", i)
			}
			parts = append(parts, s)
		default:
			L.RaiseError("join: element %d is not a string", i)
		}
	}
	push(L, bytestr.Join(parts, sep))
	return 1
}

// bstr.compare(a, b) -> -1 | 0 | 1
func modCompare(L *lua.LState) int {
	L.Push(lua.LNumber(bytestr.Compare(operand(L, 1), operand(L, 2))))
	return 1
}

// bstr.ops() -> {name, ...}
func modOps(L *lua.LState) int {
	tbl := L.NewTable()
	for _, op := range app.Operations() {
		tbl.Append(lua.LString(op.Name))
	}
	L.Push(tbl)
	return 1
}

func strToString(L *lua.LState) int {
	L.Push(lua.LString(check(L, 1).String()))
	return 1
}

func strLen(L *lua.LState) int {
	L.Push(lua.LNumber(check(L, 1).Len()))
	return 1
}

func strCap(L *lua.LState) int {
	L.Push(lua.LNumber(check(L, 1).Cap()))
	return 1
}

func strEmpty(L *lua.LState) int {
	L.Push(lua.LBool(check(L, 1).IsEmpty()))
	return 1
}

// s:at(i) -> one-byte string
func strAt(L *lua.LState) int {
	s := check(L, 1)
	c, err := s.At(L.CheckInt(2))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LString([]byte{c}))
	return 1
}

// Mutating methods return the receiver so calls can be chained.

func strSet(L *lua.LState) int {
	s := check(L, 1)
	s.Set(operand(L, 2).Bytes())
	L.Push(L.Get(1))
	return 1
}

func strAppend(L *lua.LState) int {
	s := check(L, 1)
	s.Append(operand(L, 2))
	L.Push(L.Get(1))
	return 1
}

func strErase(L *lua.LState) int {
	s := check(L, 1)
	s.Erase(L.CheckInt(2), L.CheckInt(3))
	L.Push(L.Get(1))
	return 1
}

func inPlace(fn func(*bytestr.String)) lua.LGFunction {
	return func(L *lua.LState) int {
		fn(check(L, 1))
		L.Push(L.Get(1))
		return 1
	}
}

var (
	strReverse = inPlace((*bytestr.String).Reverse)
	strLower   = inPlace((*bytestr.String).Lower)
	strUpper   = inPlace((*bytestr.String).Upper)
	strStrip   = inPlace((*bytestr.String).Strip)
)

func strReplaceChar(L *lua.LState) int {
	s := check(L, 1)
	s.ReplaceByte(byteArg(L, 2), byteArg(L, 3))
	L.Push(L.Get(1))
	return 1
}

func strReplace(L *lua.LState) int {
	s := check(L, 1)
	if err := s.Replace(operand(L, 2), operand(L, 3)); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(L.Get(1))
	return 1
}

// s:find(pattern [, from]) -> index or -1
func strFind(L *lua.LState) int {
	s := check(L, 1)
	pattern := operand(L, 2)
	L.Push(lua.LNumber(s.FindFrom(pattern, L.OptInt(3, 0))))
	return 1
}

func strCount(L *lua.LState) int {
	L.Push(lua.LNumber(check(L, 1).Count(operand(L, 2))))
	return 1
}

// s:split(sep) -> {string, ...}
func strSplit(L *lua.LState) int {
	parts, err := check(L, 1).Split(operand(L, 2))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	tbl := L.NewTable()
	for _, p := range parts {
		push(L, p)
		tbl.Append(L.Get(-1))
		L.Pop(1)
	}
	L.Push(tbl)
	return 1
}

func strEqual(L *lua.LState) int {
	L.Push(lua.LBool(operand(L, 1).Equal(operand(L, 2))))
	return 1
}

func strCompare(L *lua.LState) int {
	L.Push(lua.LNumber(check(L, 1).Compare(operand(L, 2))))
	return 1
}

func strClone(L *lua.LState) int {
	push(L, check(L, 1).Clone())
	return 1
}

// s:cstring() -> contents followed by a NUL byte
func strCString(L *lua.LState) int {
	L.Push(lua.LString(check(L, 1).CString()))
	return 1
}

// a .. b, where either side may be a Lua string
func strConcat(L *lua.LState) int {
	out := operand(L, 1).Clone()
	out.Append(operand(L, 2))
	push(L, out)
	return 1
}

// s:apply(op, ...) runs a registered operation and returns its value.
func strApply(L *lua.LState) int {
	s := check(L, 1)
	name := L.CheckString(2)

	args := make([]string, 0, L.GetTop()-2)
	for i := 3; i <= L.GetTop(); i++ {
		args = append(args, L.ToStringMeta(L.Get(i)).String())
	}

	res, err := app.ApplyTo(s, name, args...)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}

	switch res.Kind {
	case app.KindParts:
		tbl := L.NewTable()
		for _, p := range res.Parts {
			tbl.Append(lua.LString(p))
		}
		L.Push(tbl)
	case app.KindNumber:
		L.Push(lua.LNumber(res.Number))
	case app.KindBool:
		L.Push(lua.LBool(res.Bool))
	default:
		L.Push(lua.LString(res.Text))
	}
	return 1
}
