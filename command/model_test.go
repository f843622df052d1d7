/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 */

package command_test

import (
	"github.com/sabouaram/msgrt/command"
	"github.com/sabouaram/msgrt/identity"
	"github.com/sabouaram/msgrt/serial"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request/Reply framing", func() {
	var c serial.Codec

	BeforeEach(func() {
		c = serial.New()
	})

	It("round-trips a Request through Encode/Decode", func() {
		req := command.Request{
			Identity: identity.Host{UUID: "u", IP: "127.0.0.1", Hostname: "h", Pid: "1", Name: "n"},
			Command:  command.ID(100),
			Params:   []byte("hello"),
		}

		frame, err := command.EncodeRequest(c, req)
		Expect(err).ToNot(HaveOccurred())

		got, err := command.DecodeRequest(c, frame)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(req))
	})

	It("round-trips a Reply through Encode/Decode", func() {
		rep := command.Reply{Result: command.OK, Command: command.ID(100), Params: []byte("world")}

		frame, err := command.EncodeReply(c, rep)
		Expect(err).ToNot(HaveOccurred())

		got, err := command.DecodeReply(c, frame)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(rep))
	})

	It("rejects a truncated frame", func() {
		_, err := command.DecodeRequest(c, []byte{1, 2, 3})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ID ranges", func() {
	It("classifies reserved ids", func() {
		Expect(command.Invalid.IsReserved()).To(BeTrue())
		Expect(command.Connect.IsReserved()).To(BeTrue())
		Expect(command.Disconnect.IsReserved()).To(BeTrue())
		Expect(command.Alive.IsReserved()).To(BeTrue())
		Expect(command.GetServerTime.IsReserved()).To(BeTrue())
		Expect(command.ID(99).IsReserved()).To(BeTrue())
	})

	It("classifies user ids", func() {
		Expect(command.UserMin.IsUser()).To(BeTrue())
		Expect(command.ID(100).IsReserved()).To(BeFalse())
		Expect(command.ID(500).IsUser()).To(BeTrue())
	})
})

var _ = Describe("Result.String", func() {
	It("renders known codes and falls back for an unknown one", func() {
		Expect(command.OK.String()).To(Equal("OK"))
		Expect(command.ClientNotConnected.String()).To(Equal("CLIENT_NOT_CONNECTED"))
		Expect(command.Result(999).String()).To(Equal("UNKNOWN_RESULT"))
	})
})
