package compiler

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Oxidefier/oxidefier/internal/config"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

const tokenJSON = `{
  "nodeType": "YulObject",
  "name": "Token_7",
  "code": {
    "nodeType": "YulCode",
    "block": {
      "nodeType": "YulBlock",
      "statements": [
        {
          "nodeType": "YulFunctionDefinition",
          "name": "ping",
          "parameters": [],
          "returnVariables": [],
          "body": {"nodeType": "YulBlock", "statements": [
            {"nodeType": "YulExpressionStatement", "expression":
              {"nodeType": "YulFunctionCall", "functionName": {"nodeType": "YulIdentifier", "name": "pong"}, "arguments": []}}
          ]}
        },
        {
          "nodeType": "YulFunctionDefinition",
          "name": "pong",
          "parameters": [],
          "returnVariables": [],
          "body": {"nodeType": "YulBlock", "statements": [
            {"nodeType": "YulExpressionStatement", "expression":
              {"nodeType": "YulFunctionCall", "functionName": {"nodeType": "YulIdentifier", "name": "ping"}, "arguments": []}}
          ]}
        },
        {
          "nodeType": "YulExpressionStatement",
          "expression": {"nodeType": "YulFunctionCall", "functionName": {"nodeType": "YulIdentifier", "name": "stop"}, "arguments": []}
        }
      ]
    }
  },
  "subObjects": [
    {"nodeType": "YulObject", "name": "Token_7_deployed", "code": {"nodeType": "YulCode", "block": {"nodeType": "YulBlock", "statements": []}}, "subObjects": []}
  ]
}`

const badLiteralJSON = `{
  "nodeType": "YulObject",
  "name": "Bad_1",
  "code": {"nodeType": "YulCode", "block": {"nodeType": "YulBlock", "statements": [
    {"nodeType": "YulVariableDeclaration",
     "variables": [{"nodeType": "YulTypedName", "name": "x", "type": ""}],
     "value": {"nodeType": "YulLiteral", "kind": "number", "value": "0xzz", "type": ""}}
  ]}},
  "subObjects": []
}`

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Compile", func() {
	It("should translate an object tree", func() {
		res, err := Compile([]byte(tokenJSON), config.Default())

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Root).To(BeAssignableToTypeOf(&yul.Object{}))
		Expect(res.RustSource).To(ContainSubstring("pub mod token {"))
		Expect(res.RustSource).To(ContainSubstring("pub mod token_deployed {"))
		Expect(res.RustSource).To(ContainSubstring("stop(context)?;"))
		Expect(res.Diagnostics.HasErrors()).To(BeFalse())
		Expect(res.Diagnostics.Warnings()).To(HaveLen(1))
		Expect(res.Diagnostics.Warnings()[0].Message).To(ContainSubstring("ping -> pong -> ping"))
	})

	It("should honour the plain target", func() {
		cfg := config.Default()
		cfg.Target = "rust-plain"

		res, err := Compile([]byte(tokenJSON), cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.RustSource).To(ContainSubstring("stop(context)?;"))
		Expect(res.RustSource).To(ContainSubstring("-> YulOutput<()>"))
		Expect(res.RustSource).To(ContainSubstring("#![allow(unused_mut)]"))
	})

	It("should reject malformed input", func() {
		_, err := Compile([]byte(`[1, 2]`), config.Default())

		Expect(errors.Is(err, yul.ErrMalformed)).To(BeTrue())
	})

	It("should reject unknown targets", func() {
		cfg := config.Default()
		cfg.Target = "wasm"

		_, err := Compile([]byte(tokenJSON), cfg)

		Expect(errors.Is(err, config.ErrUnknownTarget)).To(BeTrue())
	})
})

var _ = Describe("Emitter", func() {
	var (
		mockCtrl   *gomock.Controller
		mockWriter *MockFileWriter
		mockRunner *MockRunner
		emitter    *Emitter
		cfg        config.Config
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockWriter = NewMockFileWriter(mockCtrl)
		mockRunner = NewMockRunner(mockCtrl)
		emitter = &Emitter{Writer: mockWriter, Runner: mockRunner, Log: quietLog}
		cfg = config.Default()
		cfg.OutDir = "crates"
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write the manifest and main.rs", func() {
		crate := filepath.Join("crates", "token")
		var manifest, source []byte

		gomock.InOrder(
			mockWriter.EXPECT().MkdirAll(filepath.Join(crate, "src")).Return(nil),
			mockWriter.EXPECT().
				WriteFile(filepath.Join(crate, "Cargo.toml"), gomock.Any()).
				DoAndReturn(func(_ string, data []byte) error {
					manifest = data
					return nil
				}),
			mockWriter.EXPECT().
				WriteFile(filepath.Join(crate, "src", "main.rs"), gomock.Any()).
				DoAndReturn(func(_ string, data []byte) error {
					source = data
					return nil
				}),
		)

		res, err := emitter.Build([]byte(tokenJSON), cfg, "token")

		Expect(err).NotTo(HaveOccurred())
		Expect(string(manifest)).To(ContainSubstring(`name = "token"`))
		Expect(string(manifest)).To(ContainSubstring("evm_opcodes.workspace = true"))
		Expect(string(source)).To(Equal(res.RustSource))
	})

	It("should run cargo check when configured", func() {
		cfg.CargoCheck = true
		crate := filepath.Join("crates", "token")

		mockWriter.EXPECT().MkdirAll(gomock.Any()).Return(nil)
		mockWriter.EXPECT().WriteFile(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		mockRunner.EXPECT().Run(crate, "cargo", []string{"check", "--quiet"}).Return(nil)

		_, err := emitter.Build([]byte(tokenJSON), cfg, "token")

		Expect(err).NotTo(HaveOccurred())
	})

	It("should report a failing cargo check", func() {
		cfg.CargoCheck = true

		mockWriter.EXPECT().MkdirAll(gomock.Any()).Return(nil)
		mockWriter.EXPECT().WriteFile(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		mockRunner.EXPECT().Run(gomock.Any(), "cargo", gomock.Any()).Return(errors.New("exit status 101"))

		_, err := emitter.Build([]byte(tokenJSON), cfg, "token")

		Expect(err).To(MatchError(ContainSubstring("cargo check failed")))
	})

	It("should not write anything when translation fails", func() {
		res, err := emitter.Build([]byte(badLiteralJSON), cfg, "bad")

		Expect(err).To(MatchError(ContainSubstring("translation errors")))
		Expect(res.Diagnostics.HasErrors()).To(BeTrue())
	})

	It("should stop when the file system fails", func() {
		mockWriter.EXPECT().MkdirAll(gomock.Any()).Return(os.ErrPermission)

		_, err := emitter.Build([]byte(tokenJSON), cfg, "token")

		Expect(errors.Is(err, os.ErrPermission)).To(BeTrue())
	})
})

var _ = Describe("orderBlock", func() {
	It("should list user callees and leave builtins out", func() {
		block := &yul.Block{Statements: []yul.Stmt{
			&yul.FunctionDefinition{Name: "caller", Body: &yul.Block{Statements: []yul.Stmt{
				&yul.ExpressionStatement{Expression: &yul.FunctionCall{FunctionName: "callee"}},
				&yul.ExpressionStatement{Expression: &yul.FunctionCall{FunctionName: "sstore"}},
			}}},
			&yul.FunctionDefinition{Name: "callee", Body: &yul.Block{}},
		}}

		fns, cycles := orderBlock(block)

		Expect(cycles).To(BeEmpty())
		Expect(fns).To(Equal([]FunctionOrder{
			{Name: "callee"},
			{Name: "caller", Calls: []string{"callee"}},
		}))
	})
})

var _ = Describe("CrateName", func() {
	It("should replace characters Cargo rejects", func() {
		Expect(CrateName("erc20-token")).To(Equal("erc20-token"))
		Expect(CrateName("my token.v2")).To(Equal("my_token_v2"))
		Expect(CrateName("")).To(Equal("yul_output"))
	})
})

var _ = Describe("Order", func() {
	It("should list functions per object in emission order", func() {
		orders, err := Order([]byte(tokenJSON))

		Expect(err).NotTo(HaveOccurred())
		Expect(orders).To(HaveLen(2))
		Expect(orders[0].Module).To(Equal("token"))
		Expect(orders[0].Functions).To(ConsistOf(
			FunctionOrder{Name: "ping", Calls: []string{"pong"}, Cyclic: true},
			FunctionOrder{Name: "pong", Calls: []string{"ping"}, Cyclic: true},
		))
		Expect(orders[0].Cycles).To(HaveLen(1))
		Expect(orders[1].Module).To(Equal("token::token_deployed"))
		Expect(orders[1].Functions).To(BeEmpty())
	})
})
