package core

// execAppCall dispatches an `appl` transaction: app creation when
// ApplicationID == 0, otherwise one of the OnCompletion lifecycle actions,
// running the relevant program and then applying its effect to state.
func (c *Ctx) execAppCall(tx *Transaction, group []*Transaction) (bool, error) {
	if tx.ApplicationID == 0 {
		return c.createApp(tx, group)
	}

	app, creatorAddr, err := c.World.App(tx.ApplicationID)
	if err != nil {
		return false, err
	}

	caller, err := c.World.Account(tx.Sender)
	if err != nil {
		return false, err
	}

	if tx.OnCompletion == OptIn {
		if !caller.OptedInApp(tx.ApplicationID) {
			if len(caller.LocalStates) >= MaxOptedInApps {
				return false, NewExecError(ErrAppLimitExceeded, "account already at opted-in-app limit")
			}
			caller.LocalStates[tx.ApplicationID] = LocalAppState{
				KeyValue: StateMap{},
				Schema:   app.LocalSchema,
			}
		}
	}

	program := app.ApprovalProgram
	if tx.OnCompletion == ClearState {
		program = app.ClearProgram
	}

	c.Globals.CurrentAppID = tx.ApplicationID
	c.Globals.CreatorAddress = creatorAddr
	accepted, runErr := c.runStateful(program, tx, group)

	if tx.OnCompletion == ClearState {
		delete(caller.LocalStates, tx.ApplicationID)
		if runErr != nil && !IsKind(runErr, ErrRejectedByLogic) {
			return false, runErr
		}
		return true, nil
	}

	if runErr != nil {
		return false, runErr
	}
	if !accepted {
		return false, NewExecError(ErrRejectedByLogic, "approval program rejected")
	}

	switch tx.OnCompletion {
	case NoOp, OptIn:
		// state already applied above; nothing further.
	case CloseOut:
		delete(caller.LocalStates, tx.ApplicationID)
	case UpdateApplication:
		app.ApprovalProgram = tx.ApprovalProgram
		app.ClearProgram = tx.ClearProgram
	case DeleteApplication:
		if c.anyAccountOptedIn(tx.ApplicationID) {
			return false, NewExecError(ErrInvalidTxParams, "cannot delete app with accounts still opted in")
		}
		creator, err := c.World.Account(creatorAddr)
		if err != nil {
			return false, err
		}
		delete(creator.CreatedApps, tx.ApplicationID)
		delete(c.World.Apps, tx.ApplicationID)
	}
	return true, nil
}

func (c *Ctx) anyAccountOptedIn(id AppID) bool {
	for _, acc := range c.World.Accounts {
		if acc.OptedInApp(id) {
			return true
		}
	}
	return false
}

// createApp runs the incoming approval program with CurrentApplicationID
// held at 0 (the id does not exist yet, matching the stateless-creation
// convention), then allocates the app only if the program accepts.
func (c *Ctx) createApp(tx *Transaction, group []*Transaction) (bool, error) {
	creator, err := c.World.Account(tx.Sender)
	if err != nil {
		return false, err
	}
	if len(creator.CreatedApps) >= MaxCreatedApps {
		return false, NewExecError(ErrAppLimitExceeded, "creator already at created-app limit")
	}

	c.Globals.CurrentAppID = 0
	c.Globals.CreatorAddress = ZeroAddress
	accepted, err := c.runStateful(tx.ApprovalProgram, tx, group)
	if err != nil {
		return false, err
	}
	if !accepted {
		return false, NewExecError(ErrRejectedByLogic, "approval program rejected app creation")
	}

	id := c.World.NextAppID()
	creator.CreatedApps[id] = &AppAttributes{
		ApprovalProgram: tx.ApprovalProgram,
		ClearProgram:    tx.ClearProgram,
		Creator:         tx.Sender,
		GlobalState:     StateMap{},
		GlobalSchema:    tx.GlobalSchema,
		LocalSchema:     tx.LocalSchema,
	}
	c.World.Apps[id] = tx.Sender
	return true, nil
}

// runStateful assembles and executes an application program against this
// engine context, the stateful counterpart of RunStateless.
func (c *Ctx) runStateful(program string, tx *Transaction, group []*Transaction) (bool, error) {
	defer func() {
		c.Globals.CurrentAppID = 0
		c.Globals.CreatorAddress = ZeroAddress
	}()
	prog, err := Assemble(program)
	if err != nil {
		return false, err
	}
	ip := NewInterpreter(prog, ModeStateful, tx, group, c.Globals, c)
	return ip.Run()
}
