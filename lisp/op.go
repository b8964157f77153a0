// Copyright © 2018 The ELPS authors

package lisp

var langSpecialOps = []*langBuiltin{
	{"quote", Formals("expr"), opQuote,
		`Returns its argument unevaluated. This is the operator behind
		the ' prefix syntax.`},
	{"cond", Formals(VarArgSymbol, "branches"), opCond,
		`Evaluates the test expression of each (test expr) branch from left
		to right. The expr of the first branch whose test is not the empty
		list is evaluated and returned. Remaining branches are not
		evaluated. Signals an error if no test is true.`},
	{"lambda", Formals("params", "body"), opLambda,
		`Returns an anonymous function. Params is either a list of symbols
		bound positionally to the call arguments or a single symbol bound
		to the entire argument list. The function captures the enclosing
		environment by reference.`},
	{"defun", Formals("name", "params", "body"), opDefun,
		`Defines a named function in a new scope frame of the current
		environment. The function may refer to itself, and to any
		function defined later in the same environment, by name.
		Returns ().`},
}

var specialOps = make(map[string]*langBuiltin)

func init() {
	for _, op := range langSpecialOps {
		specialOps[op.name] = op
	}
}

// IsSpecialOp returns true if name is the name of a special operator.
func IsSpecialOp(name string) bool {
	_, ok := specialOps[name]
	return ok
}

func opQuote(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "quote", args, 1)
	if err != nil {
		return nil, err
	}
	return args.Cells[0], nil
}

func opCond(env *LEnv, args *LVal) (*LVal, error) {
	for i, branch := range args.Cells {
		if branch.Type != LSExpr {
			return nil, env.Errorf("expected list in argument %d, got %s", i, atomDesc(branch))
		}
		err := checkArgs(env, "cond", branch, 2)
		if err != nil {
			return nil, err
		}
		test, err := env.Eval(branch.Cells[0])
		if err != nil {
			return nil, err
		}
		if Not(test) {
			continue
		}
		return env.Eval(branch.Cells[1])
	}
	return nil, env.Errorf("cond does not match")
}

func atomDesc(v *LVal) string {
	if v.Type == LFun {
		return "function"
	}
	return "atom"
}

func opLambda(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "lambda", args, 2)
	if err != nil {
		return nil, err
	}
	params, body := args.Cells[0], args.Cells[1]
	err = checkParams(env, params)
	if err != nil {
		return nil, err
	}
	return Lambda(env, params, body), nil
}

func opDefun(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "defun", args, 3)
	if err != nil {
		return nil, err
	}
	name, params, body := args.Cells[0], args.Cells[1], args.Cells[2]
	if name.Type != LSymbol {
		return nil, env.Errorf("defun: function name is not a symbol: %v", name)
	}
	err = checkParams(env, params)
	if err != nil {
		return nil, err
	}
	// The closure shares env so the binding pushed below is visible from
	// its body.
	err = env.Put(name, Lambda(env, params, body))
	if err != nil {
		return nil, err
	}
	return Nil(), nil
}

func checkParams(env *LEnv, params *LVal) error {
	switch params.Type {
	case LSymbol:
		return nil
	case LSExpr:
		for _, p := range params.Cells {
			if p.Type != LSymbol {
				return env.Errorf("parameter is not a symbol: %v", p)
			}
		}
		return nil
	default:
		return env.Errorf("invalid parameter specification: %v", params)
	}
}

func checkArgs(env *LEnv, name string, args *LVal, n int) error {
	if len(args.Cells) != n {
		return env.Errorf("%s: expected %d argument(s), got %d", name, n, len(args.Cells))
	}
	return nil
}
