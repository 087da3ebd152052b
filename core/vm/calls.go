// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"math/big"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/crypto"
)

// canTransfer reports whether addr's balance covers amount.
func (evm *EVM) canTransfer(addr common.Address, amount *big.Int) bool {
	return evm.db.GetBalance(addr).Cmp(amount) >= 0
}

func (evm *EVM) transfer(from, to common.Address, amount *big.Int) {
	evm.db.AddBalance(from, new(big.Int).Neg(amount))
	evm.db.AddBalance(to, amount)
}

// run dispatches to a precompile if addr names one, otherwise to the
// bytecode interpreter.
func (evm *EVM) run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	if contract.CodeAddr != nil {
		precompiles := PrecompiledPreAtlantis
		if evm.ruleSet.IsAtlantis(evm.blockNumber) {
			precompiles = PrecompiledAtlantis
		}
		if p, ok := precompiles[string(contract.CodeAddr.Bytes())]; ok {
			return evm.RunPrecompiled(p, input, contract)
		}
	}
	return evm.Run(contract, input, readOnly)
}

// Call executes the code at addr as a message call from me, transferring
// value from me to addr first.
func (evm *EVM) Call(me ContractRef, addr common.Address, input []byte, gas, price, value *big.Int) ([]byte, error) {
	return evm.call(me, addr, input, gas, price, value, false)
}

// CallCode is like Call but the code at addr runs against the caller's own
// storage (addr's balance is not debited; me's storage is used).
func (evm *EVM) CallCode(me ContractRef, addr common.Address, input []byte, gas, price, value *big.Int) ([]byte, error) {
	return evm.callCode(me, addr, input, gas, price, value, false)
}

// DelegateCall is CallCode except caller and value are propagated from the
// parent frame unchanged, rather than being me/value.
func (evm *EVM) DelegateCall(me ContractRef, addr common.Address, input []byte, gas, price *big.Int) ([]byte, error) {
	contract, ok := me.(*Contract)
	if !ok {
		return nil, ErrDepth
	}
	return evm.callCodeAsDelegate(contract, addr, input, gas, price)
}

// StaticCall is Call with no value transfer and the read-only guard set
// for the duration of the call (and everything it calls).
func (evm *EVM) StaticCall(me ContractRef, addr common.Address, input []byte, gas *big.Int) ([]byte, error) {
	return evm.call(me, addr, input, gas, new(big.Int), new(big.Int), true)
}

func (evm *EVM) call(me ContractRef, addr common.Address, input []byte, gas, price, value *big.Int, readOnly bool) ([]byte, error) {
	if evm.depth > maxCallDepth {
		return nil, ErrDepth
	}
	if value.Sign() != 0 && !evm.canTransfer(me.Address(), value) {
		return nil, ErrInsufficientBalance
	}

	snapshot := evm.db.Snapshot()

	if !evm.db.Exist(addr) {
		evm.db.CreateAccount(addr)
	}
	if value.Sign() != 0 {
		evm.transfer(me.Address(), addr, value)
	}

	contract := NewContract(me, AccountRef(addr), value, gas, price)
	contract.SetCallCode(&addr, evm.db.GetCodeHash(addr), evm.db.GetCode(addr))

	evm.depth++
	ret, err := evm.run(contract, input, readOnly)
	evm.depth--

	if err != nil {
		evm.db.RevertToSnapshot(snapshot)
	}
	return ret, err
}

func (evm *EVM) callCode(me ContractRef, addr common.Address, input []byte, gas, price, value *big.Int, readOnly bool) ([]byte, error) {
	if evm.depth > maxCallDepth {
		return nil, ErrDepth
	}
	if value.Sign() != 0 && !evm.canTransfer(me.Address(), value) {
		return nil, ErrInsufficientBalance
	}

	snapshot := evm.db.Snapshot()

	contract := NewContract(me, me, value, gas, price)
	contract.SetCallCode(&addr, evm.db.GetCodeHash(addr), evm.db.GetCode(addr))

	evm.depth++
	ret, err := evm.run(contract, input, readOnly)
	evm.depth--

	if err != nil {
		evm.db.RevertToSnapshot(snapshot)
	}
	return ret, err
}

func (evm *EVM) callCodeAsDelegate(parent *Contract, addr common.Address, input []byte, gas, price *big.Int) ([]byte, error) {
	if evm.depth > maxCallDepth {
		return nil, ErrDepth
	}

	snapshot := evm.db.Snapshot()

	contract := NewContract(parent, parent, parent.Value(), gas, price).AsDelegate()
	contract.SetCallCode(&addr, evm.db.GetCodeHash(addr), evm.db.GetCode(addr))

	evm.depth++
	ret, err := evm.run(contract, input, evm.readOnly)
	evm.depth--

	if err != nil {
		evm.db.RevertToSnapshot(snapshot)
	}
	return ret, err
}

// Create deploys the code produced by running init (code) as a new
// contract owned by me, at the nonce-derived address.
func (evm *EVM) Create(me ContractRef, code []byte, gas, price, value *big.Int) ([]byte, common.Address, error) {
	if evm.depth > maxCallDepth {
		return nil, common.Address{}, ErrDepth
	}
	if value.Sign() != 0 && !evm.canTransfer(me.Address(), value) {
		return nil, common.Address{}, ErrInsufficientBalance
	}

	nonce := evm.db.GetNonce(me.Address())
	evm.db.SetNonce(me.Address(), nonce+1)

	contractAddr := crypto.CreateAddress(me.Address(), nonce)

	if evm.db.Exist(contractAddr) {
		return nil, common.Address{}, ErrContractAddressCollision
	}

	snapshot := evm.db.Snapshot()
	evm.db.CreateAccount(contractAddr)
	evm.db.SetNonce(contractAddr, 1)
	if value.Sign() != 0 {
		evm.transfer(me.Address(), contractAddr, value)
	}

	contract := NewContract(me, AccountRef(contractAddr), value, gas, price)
	contract.SetCallCode(&contractAddr, crypto.Keccak256Hash(code), code)

	evm.depth++
	ret, err := evm.run(contract, nil, false)
	evm.depth--

	// Homestead onward: an init run that can't pay for the resulting
	// code's storage deposit is a hard failure of the whole CREATE, not a
	// silently-empty contract.
	maxCodeSize := 24576
	if err == nil && len(ret) > maxCodeSize {
		err = ErrMaxCodeSizeExceeded
	}
	if err == nil {
		createDataGas := new(big.Int).Mul(big.NewInt(int64(len(ret))), GasContractByte)
		if contract.UseGas(createDataGas) {
			evm.db.SetCode(contractAddr, ret)
		} else {
			err = CodeStoreOutOfGasError
		}
	}

	if err != nil && (err != CodeStoreOutOfGasError || evm.ruleSet.IsHomestead(evm.blockNumber)) {
		evm.db.RevertToSnapshot(snapshot)
		if err != ErrRevert && err != CodeStoreOutOfGasError {
			contract.Gas = new(big.Int)
		}
	}

	return ret, contractAddr, err
}
