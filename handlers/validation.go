package handlers

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ideaforge/backend/services"
	"github.com/ipfs/go-cid"
)

var (
	etherPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

	registerOnce sync.Once
	registerErr  error
)

var customRules = map[string]validator.Func{
	// 0x-prefixed 20-byte hex address
	"ethaddr": func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
	},
	// decimal ether amount with at most 18 fractional digits
	"ether": func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !etherPattern.MatchString(s) {
			return false
		}
		_, err := services.ParseEther(s)
		return err == nil
	},
	// base-10 unsigned integer of any size
	"uintstr": func(fl validator.FieldLevel) bool {
		_, err := services.ParseWei(fl.Field().String())
		return err == nil
	},
	"hexbytes": func(fl validator.FieldLevel) bool {
		_, err := hexutil.Decode(fl.Field().String())
		return err == nil
	},
	"txhash": func(fl validator.FieldLevel) bool {
		return txHashPattern.MatchString(fl.Field().String())
	},
	"cid": func(fl validator.FieldLevel) bool {
		_, err := cid.Decode(fl.Field().String())
		return err == nil
	},
}

// RegisterValidators installs the custom rules on gin's validator. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		for tag, fn := range customRules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("failed to register %s: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}
