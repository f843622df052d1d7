/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 */

package registry_test

import (
	"errors"

	"github.com/sabouaram/msgrt/command"
	"github.com/sabouaram/msgrt/registry"
	"github.com/sabouaram/msgrt/serial"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var (
		reg registry.Registry
		c   serial.Codec
	)

	BeforeEach(func() {
		reg = registry.New()
		c = serial.New()
	})

	It("rejects registering a reserved command id", func() {
		err := registry.Register1(reg, c, command.Connect, func(s string) (string, error) { return s, nil })
		Expect(err).To(HaveOccurred())
	})

	It("rejects registering the same id twice", func() {
		Expect(registry.Register1(reg, c, command.ID(100), func(s string) (string, error) { return s, nil })).To(Succeed())
		err := registry.Register1(reg, c, command.ID(100), func(s string) (string, error) { return s, nil })
		Expect(err).To(HaveOccurred())
	})

	It("echoes a single string argument (id 100)", func() {
		Expect(registry.Register1(reg, c, command.ID(100), func(s string) (string, error) {
			return s, nil
		})).To(Succeed())

		h, ok := reg.Lookup(command.ID(100))
		Expect(ok).To(BeTrue())

		params, err := registry.EncodeArgs(c, "hello")
		Expect(err).ToNot(HaveOccurred())

		out, err := h(params)
		Expect(err).ToNot(HaveOccurred())

		var got string
		Expect(registry.DecodeResult(c, out, &got)).To(Succeed())
		Expect(got).To(Equal("hello"))
	})

	It("reports bad parameters when arity does not match (id 101 expects 2 floats)", func() {
		Expect(registry.Register2(reg, c, command.ID(101), func(a, b float64) (int32, error) {
			return int32(a + b), nil
		})).To(Succeed())

		h, _ := reg.Lookup(command.ID(101))

		params, err := registry.EncodeArgs(c, 1.5)
		Expect(err).ToNot(HaveOccurred())

		_, err = h(params)
		Expect(err).To(HaveOccurred())
	})

	It("surfaces a callback error as ErrorCallbackFailed", func() {
		Expect(registry.Register0(reg, c, command.ID(102), func() (int32, error) {
			return 0, errors.New("boom")
		})).To(Succeed())

		h, _ := reg.Lookup(command.ID(102))
		_, err := h(nil)
		Expect(err).To(HaveOccurred())
	})

	It("reports missing handlers via Has/Lookup", func() {
		Expect(reg.Has(command.ID(999))).To(BeFalse())
		_, ok := reg.Lookup(command.ID(999))
		Expect(ok).To(BeFalse())
	})

	It("unregisters a handler", func() {
		Expect(registry.Register0(reg, c, command.ID(103), func() (int32, error) { return 1, nil })).To(Succeed())
		reg.Unregister(command.ID(103))
		Expect(reg.Has(command.ID(103))).To(BeFalse())
	})
})
