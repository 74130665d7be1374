package sema

import (
	"context"
	"testing"

	"zeron/internal/ast"
	"zeron/internal/diag"
	"zeron/internal/lexer"
	"zeron/internal/parser"
	"zeron/internal/source"
	"zeron/internal/symbols"
	"zeron/internal/types"
)

func TestGlobalLetIsInitializedAndFinal(t *testing.T) {
	r := mustResolve(t, "let x = 5;")
	b, err := r.res.Table.Lookup("x")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsGlobal() || !types.Equal(b.Type, types.Int()) || !b.Initialized || !b.Final {
		t.Fatalf("x = %v", b)
	}
}

func TestMutableLetIsNotFinal(t *testing.T) {
	r := mustResolve(t, "let mut x = 1.5;")
	b, _ := r.res.Table.Lookup("x")
	if b.Final || b.Width != symbols.WidthDouble {
		t.Fatalf("x = %v", b)
	}
}

func TestResolutionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"missing initializer", "let y: Int;", diag.SemaMissingInitializer},
		{"no type and no init", "let y;", diag.SemaUninferredType},
		{"self reference", "{ let x = x; }", diag.SemaSelfReferenceInInitializer},
		{"declared type wins", `let a: Int = "s";`, diag.SemaTypeMismatch},
		{"binary mismatch", `print(1 + "a");`, diag.SemaTypeMismatch},
		{"int and float do not mix", "let a = 1 + 2.0;", diag.SemaTypeMismatch},
		{"duplicate global", "let a = 1; let a = 2;", diag.SemaDuplicateSymbol},
		{"no shadowing in nested scope", "let a = 1; { let a = 2; }", diag.SemaDuplicateSymbol},
		{"duplicate function", "fn f() {} fn f() {}", diag.SemaDuplicateSymbol},
		{"unknown variable", "print(nope);", diag.SemaUnknownSymbol},
		{"unknown function", "nope();", diag.SemaUnknownSymbol},
		{"unknown assignment target", "nope = 1;", diag.SemaUnknownSymbol},
		{"not iterable", "for (let i in 3) print(i);", diag.SemaNotIterable},
		{"if condition", "if (1) print(1);", diag.SemaNotBoolean},
		{"while condition", `while ("s") print(1);`, diag.SemaNotBoolean},
		{"until condition", "until (1) print(1);", diag.SemaNotBoolean},
		{"if expression condition", "let a = if (1) then 1 else 2;", diag.SemaNotBoolean},
		{"if expression branches", `let a = if (true) then 1 else "s";`, diag.SemaTypeMismatch},
		{"callee not callable", "let a = 1; a();", diag.SemaCalleeNotCallable},
		{"arity", "fn f(a: Int) {} f();", diag.SemaArityMismatch},
		{"argument type", `fn f(a: Int) {} f("s");`, diag.SemaTypeMismatch},
		{"return type", `fn f(): Int { return "s"; }`, diag.SemaTypeMismatch},
		{"bare return in Int function", "fn f(): Int { return; }", diag.SemaTypeMismatch},
		{"returns disagree", `fn f(b: Boolean) { if (b) return 1; return "s"; }`, diag.SemaTypeMismatch},
		{"null into non-nullable", "let a: Foo = null;", diag.SemaTypeMismatch},
		{"recursive inferred function", "fn f(n: Int) = f(n);", diag.SemaUninferredType},
		{"recursive lambda", "let f = x -> f(x); print(f(1));", diag.SemaUninferredType},
		{"lambda parameter collides with live name", "let x = 1; let f = x -> x; print(f(2));", diag.SemaDuplicateSymbol},
		{"annotated lambda arity", "let f: (Int, Int) -> Int = x -> x;", diag.SemaArityMismatch},
		{"annotated lambda body", `let f: (Int) -> String = x -> x + 1;`, diag.SemaTypeMismatch},
		{"lambda arity at call", "let f = x -> x; print(f(1, 2));", diag.SemaArityMismatch},
		{"lambda from call result", "fn mk() = x -> x; let g = mk(); print(g(1));", diag.SemaUninferredType},
		{"lambda reads call-site local", "let f = a -> a + z; { let z = 1; print(f(2)); }", diag.SemaUnknownSymbol},
		{"lambda reads local declared after it", "{ let f = a -> a + z; let z = 1; print(f(2)); }", diag.SemaUnknownSymbol},
		{"lambda assigns call-site local", "let f = a -> { z = a; return a; }; { let mut z = 1; print(f(2)); }", diag.SemaUnknownSymbol},
		{"lambda calls call-site lambda", "let f = a -> g(a); { let g = b -> b; print(f(2)); }", diag.SemaUnknownSymbol},
		{"inner lambda reads outer call-site local", "let f = a -> { let g = b -> b + z; return g(a); }; { let z = 1; print(f(2)); }", diag.SemaUnknownSymbol},
		{"reassign unannotated lambda", `let mut f = x -> x; f = y -> "s"; print(f(1) + 1);`, diag.SemaTypeMismatch},
		{"reassign unannotated lambda with itself", "let mut f = x -> x; f = f;", diag.SemaTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolveSource(t, tt.src)
			if r.res.Err == nil {
				t.Fatalf("expected %s, resolution succeeded", tt.want.ID())
			}
			if r.res.Err.Code != tt.want {
				t.Fatalf("got %v, want %s", r.res.Err, tt.want.ID())
			}
		})
	}
}

func TestResolvesCleanly(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"sibling scopes reuse a name", "{ let a = 1; } { let a = 2; }"},
		{"nullable without initializer", "let mut a: Foo?; let b: Foo? = null;"},
		{"compound assignment", "let mut n = 0; n += 2; n *= 3;"},
		{"until loop", "let mut n = 0; until (n == 3) n = n + 1;"},
		{"loop with break", "loop { break; }"},
		{"logical operators", "let b = true and false or true;"},
		{"comparison yields Boolean", "let b: Boolean = 1 < 2;"},
		{"grouping", "let a = (1 + 2) * 3;"},
		{"if expression", "let a = if (1 < 2) then 1 else 2;"},
		{"strings", `let s = "a" + "b";`},
		{"recursion with declared return", "fn fact(n: Int): Int { if (n < 2) return 1; return n * fact(n - 1); }"},
		{"mutual call through namespace", "fn a(): Int { return 1; } fn b(): Int { return a() + 1; }"},
		{"clock builtin", "let t: Int = clock();"},
		{"unit function call", "fn hello() { print(1); } hello();"},
		{"lambda next to function", "fn f(a: Int): Int { return a; } let g = x -> x; print(g(1) + f(2));"},
		{"function value", "fn sq(x: Int): Int { return x * x; } let g = sq; print(g(3));"},
		{"uncalled lambda", `let f = x -> x + "never typed";`},
		{"block lambda", "let f = x -> { let y = x * 2; return y; }; print(f(4));"},
		{"zero parameter lambda", "let f = () -> 42; print(f());"},
		{"nested range loop", "for (let i in 1..3) { for (let j in 1..2) { print(i * j); } }"},
		{"lambda captures enclosing local", "{ let z = 1; let f = a -> a + z; { let w = 2; print(f(w)); } }"},
		{"lambda reads global declared later", "let f = a -> a + z; let z = 1; print(f(2));"},
		{"lambda body declares its own locals", "{ let w = 1; let f = a -> { let y = a; return y; }; print(f(w)); }"},
		{"reassign annotated lambda", "let mut f: (Int) -> Int = x -> x; f = y -> y * 2; print(f(1));"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustResolve(t, tt.src)
		})
	}
}

func TestLambdaCallSiteInstantiation(t *testing.T) {
	r := mustResolve(t, "let f = a -> a + 1; print(f(3));")

	call := r.findCall(t, "f")
	if got := r.b.Exprs.Get(call).Type.Get(); !types.Equal(got, types.Int()) {
		t.Fatalf("call type = %s, want Int", got)
	}
	if len(r.res.Instances) != 1 {
		t.Fatalf("instances = %d", len(r.res.Instances))
	}
	inst := r.res.Instances[r.res.CallSites[call]]
	if want := types.Lambda(types.Int(), types.Int()); !types.Equal(inst.Sig, want) {
		t.Fatalf("instance sig = %s, want %s", inst.Sig, want)
	}

	// объявление лямбды не тронуто: её тело без типов
	lam := inst.Lambda
	data, _ := r.b.Exprs.Lambda(lam)
	ret, _ := r.b.Stmts.Return(data.Body[0])
	if r.b.Exprs.Get(ret.Value).Type.Resolved() {
		t.Fatal("instantiation must not write into the lambda body")
	}
	if got, ok := inst.TypeOf(ret.Value); !ok || !types.Equal(got, types.Int()) {
		t.Fatalf("instance body type = %s", got)
	}

	b, _ := r.res.Table.Lookup("f")
	if b.Width != symbols.WidthFunction || !b.Type.Return().IsInfer() {
		t.Fatalf("f = %v", b)
	}
}

func TestLambdaSecondInstantiationWithFloatMismatches(t *testing.T) {
	// a + 1 with a: Float is exact(Float, Int)
	r := resolveSource(t, "let f = a -> a + 1; print(f(3)); print(f(3.0));")
	if r.res.Err == nil || r.res.Err.Code != diag.SemaTypeMismatch {
		t.Fatalf("got %v, want TypeMismatch", r.res.Err)
	}
	if len(r.res.Instances) != 1 {
		t.Fatalf("the Int instance must survive, got %d", len(r.res.Instances))
	}
}

func TestLambdaIndependentInstances(t *testing.T) {
	r := mustResolve(t, "let id = a -> a; print(id(1)); print(id(2.5)); print(id(3));")
	if len(r.res.Instances) != 2 {
		t.Fatalf("instances = %d, want 2 (Int shared)", len(r.res.Instances))
	}
	got := []types.Type{r.res.Instances[0].Sig.Return(), r.res.Instances[1].Sig.Return()}
	if !types.Equal(got[0], types.Int()) || !types.Equal(got[1], types.Float()) {
		t.Fatalf("returns = %v", got)
	}
	if len(r.res.CallSites) != 3 {
		t.Fatalf("call sites = %d", len(r.res.CallSites))
	}
}

func TestAnnotatedLambdaResolvesInPlace(t *testing.T) {
	r := mustResolve(t, "let f: (Int) -> Int = x -> x + 1; print(f(2));")
	if len(r.res.Instances) != 0 {
		t.Fatalf("annotated lambdas are not instantiated, got %d", len(r.res.Instances))
	}
	let, _ := r.b.Stmts.Let(r.stmt(0))
	sig := types.Lambda(types.Int(), types.Int())
	if got := r.b.Exprs.Get(let.Init).Type.Get(); !types.Equal(got, sig) {
		t.Fatalf("lambda type = %s", got)
	}
	data, _ := r.b.Exprs.Lambda(let.Init)
	ret, _ := r.b.Stmts.Return(data.Body[0])
	if !r.b.Exprs.Get(ret.Value).Type.Resolved() {
		t.Fatal("annotated lambda body is typed in place")
	}
}

func TestLetBoundLambdaPassedAsArgument(t *testing.T) {
	r := mustResolve(t, `
fn apply(g: (Int) -> Int, v: Int): Int { return g(v); }
let inc = a -> a + 1;
print(apply(inc, 2));
`)
	if len(r.res.Instances) != 1 {
		t.Fatalf("instances = %d", len(r.res.Instances))
	}
	if want := types.Lambda(types.Int(), types.Int()); !types.Equal(r.res.Instances[0].Sig, want) {
		t.Fatalf("sig = %s", r.res.Instances[0].Sig)
	}
}

func TestLoopSumInfersForBinding(t *testing.T) {
	r := mustResolve(t, "fn loopSum(): Int { let mut total = 0; for (let i in 1..5) { total += i; } return total; }")
	fn, err := r.res.Table.LookupFunction("loopSum")
	if err != nil {
		t.Fatal(err)
	}
	if !types.Equal(fn.Type.Return(), types.Int()) {
		t.Fatalf("loopSum returns %s", fn.Type.Return())
	}

	var frame *Frame
	for i := range r.res.Frames {
		if r.res.Frames[i].Name == "loopSum" {
			frame = &r.res.Frames[i]
		}
	}
	if frame == nil {
		t.Fatal("no frame for loopSum")
	}
	names := map[string]types.Type{}
	for _, b := range frame.Locals {
		names[b.Name] = b.Type
	}
	if !types.Equal(names["i"], types.Int()) || !types.Equal(names["total"], types.Int()) {
		t.Fatalf("frame locals = %v", frame.Locals)
	}
}

func TestExpressionBodiedFunctionInfersReturn(t *testing.T) {
	r := mustResolve(t, "fn half(x: Float) = x / 2.0; let h = half(3.0);")
	fn, _ := r.res.Table.LookupFunction("half")
	if !types.Equal(fn.Type.Return(), types.Float()) {
		t.Fatalf("half returns %s", fn.Type.Return())
	}
	h, _ := r.res.Table.Lookup("h")
	if !types.Equal(h.Type, types.Float()) {
		t.Fatalf("h = %v", h)
	}
}

func TestFunctionWithoutReturnsIsUnit(t *testing.T) {
	r := mustResolve(t, "fn f() { print(1); } let u = f();")
	u, _ := r.res.Table.Lookup("u")
	if !types.Equal(u.Type, types.Unit()) {
		t.Fatalf("u = %v", u)
	}
}

func TestDoubleWidthLocals(t *testing.T) {
	r := mustResolve(t, "{ let d = 1.5; let i = 1; let e: Float = 2.0; }")
	main := r.res.Frames[len(r.res.Frames)-1]
	if main.Name != MainFrame || main.MaxLocals != 5 {
		t.Fatalf("main frame = %+v", main)
	}
	slots := map[string]int{}
	for _, b := range main.Locals {
		slots[b.Name] = b.Slot
	}
	if slots["d"] != 0 || slots["i"] != 2 || slots["e"] != 3 {
		t.Fatalf("slots = %v", slots)
	}
}

func TestFrameSlotsRestartAfterFunction(t *testing.T) {
	r := mustResolve(t, "fn f(a: Float, b: Int) { let c = a; } { let x = 1; }")
	var f, main Frame
	for _, fr := range r.res.Frames {
		switch fr.Name {
		case "f":
			f = fr
		case MainFrame:
			main = fr
		}
	}
	if f.MaxLocals != 5 || len(f.Locals) != 3 {
		t.Fatalf("f frame = %+v", f)
	}
	if main.MaxLocals != 1 || len(main.Locals) != 1 {
		t.Fatalf("main frame = %+v", main)
	}
}

func TestSecondResolutionIsInvalidState(t *testing.T) {
	b, file := parseOnly(t, "let x = 5; print(x);")
	if first := Resolve(context.Background(), b, file, Options{}); first.Err != nil {
		t.Fatal(first.Err)
	}
	second := Resolve(context.Background(), b, file, Options{})
	if second.Err == nil || second.Err.Code != diag.SemaInvalidState {
		t.Fatalf("got %v, want InvalidState", second.Err)
	}
}

func TestErrorIsReported(t *testing.T) {
	b, file := parseOnly(t, "let a: Int = true;")
	bag := diag.NewBag(4)
	res := Resolve(context.Background(), b, file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.OK() || bag.Len() != 1 {
		t.Fatalf("want one diagnostic, got %d", bag.Len())
	}
	if d := bag.Items()[0]; d.Code != diag.SemaTypeMismatch || d.Primary.Empty() {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestBuiltAST(t *testing.T) {
	// let s = "a"; print(s == "b");
	b := ast.NewBuilder(ast.Hints{})
	file := b.NewFile(source.Span{})
	lit := b.Exprs.NewLiteral(source.Span{}, ast.ExprLiteralData{Kind: ast.LitString, Str: "a"})
	b.PushStmt(file, b.Stmts.NewLet(source.Span{}, ast.StmtLetData{Name: "s", Type: types.Infer(), Init: lit, Final: true}))
	eq := b.Exprs.NewBinary(source.Span{}, ast.BinaryEq, source.Span{},
		b.Exprs.NewVariable(source.Span{}, "s"),
		b.Exprs.NewLiteral(source.Span{}, ast.ExprLiteralData{Kind: ast.LitString, Str: "b"}))
	b.PushStmt(file, b.Stmts.NewPrint(source.Span{}, eq))

	res := Resolve(context.Background(), b, file, Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if got := b.Exprs.Get(eq).Type.Get(); !types.Equal(got, types.Boolean()) {
		t.Fatalf("equality type = %s", got)
	}
}

// typeParamFn builds fn f(a: #A, b: <second>) { print(a + b); }.
func typeParamFn(second types.Type) (*ast.Builder, ast.FileID, ast.ExprID) {
	b := ast.NewBuilder(ast.Hints{})
	file := b.NewFile(source.Span{})
	sum := b.Exprs.NewBinary(source.Span{}, ast.BinaryAdd, source.Span{File: 0, Start: 3, End: 4},
		b.Exprs.NewVariable(source.Span{}, "a"),
		b.Exprs.NewVariable(source.Span{}, "b"))
	first := types.TypeParam("A")
	b.PushStmt(file, b.Stmts.NewFn(source.Span{}, ast.StmtFnData{
		Name:   "f",
		Params: []ast.FnParam{{Name: "a", Type: first}, {Name: "b", Type: second}},
		Sig:    types.Function("f", types.Unit(), first, second),
		Body:   []ast.StmtID{b.Stmts.NewPrint(source.Span{}, sum)},
	}))
	return b, file, sum
}

func TestTypeParametersDoNotUnify(t *testing.T) {
	b, file, _ := typeParamFn(types.TypeParam("B"))
	res := Resolve(context.Background(), b, file, Options{})
	if res.Err == nil || res.Err.Code != diag.SemaUninferredType {
		t.Fatalf("got %v, want UninferredType", res.Err)
	}
	if want := (source.Span{File: 0, Start: 3, End: 4}); res.Err.Span != want {
		t.Fatalf("span = %v, want the operator", res.Err.Span)
	}

	b, file, sum := typeParamFn(types.TypeParam("A"))
	res = Resolve(context.Background(), b, file, Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if got := b.Exprs.Get(sum).Type.Get(); !types.Equal(got, types.TypeParam("A")) {
		t.Fatalf("a + a type = %s", got)
	}
}

func TestSessionKeepsGlobalsAndDropsFailures(t *testing.T) {
	fs := source.NewFileSet()
	b := ast.NewBuilder(ast.Hints{})
	s := NewSession(b, Options{})
	feed := func(src string) Result {
		t.Helper()
		id := fs.AddVirtual("repl", []byte(src))
		pr := parser.ParseFile(context.Background(), fs, lexer.New(fs.Get(id), lexer.Options{}), b, parser.Options{MaxErrors: 4})
		if pr.Errors != 0 {
			t.Fatalf("parse %q failed", src)
		}
		return s.Resolve(context.Background(), pr.File)
	}

	if res := feed("let a = 1;"); !res.OK() {
		t.Fatal(res.Err)
	}
	if res := feed("let b = a + nope;"); res.OK() || res.Err.Code != diag.SemaUnknownSymbol {
		t.Fatalf("got %v", res.Err)
	}
	// b не остался полуобъявленным
	res := feed("let b = a * 2; print(b);")
	if !res.OK() {
		t.Fatal(res.Err)
	}
	if bb, err := res.Table.Lookup("b"); err != nil || !bb.Initialized {
		t.Fatalf("b = %v, %v", bb, err)
	}
}
