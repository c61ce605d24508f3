//go:build e2e

package e2e

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gitops-playground/playctl/pkg/svc/status"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Playground", Ordered, func() {
	SetDefaultEventuallyTimeout(5 * time.Minute)
	SetDefaultEventuallyPollingInterval(5 * time.Second)

	It("creates the cluster and add-ons", func() {
		out, err := playctl("infra", "setup")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("infrastructure ready"))
	})

	It("is idempotent", func() {
		out, err := playctl("infra", "setup")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("already exists"))
	})

	It("builds and loads the albums image", func() {
		out, err := playctl("app", "build")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("loaded"))
	})

	It("deploys the application and writes the hosts block", func() {
		_, err := playctl("app", "deploy")
		Expect(err).NotTo(HaveOccurred())

		hosts, err := os.ReadFile(hostsFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(hosts)).To(ContainSubstring("# BEGIN playctl " + clusterName))
		Expect(string(hosts)).To(ContainSubstring("127.0.0.1 localhost"))
	})

	It("answers the smoke test over a port-forward", func() {
		Eventually(func(g Gomega) {
			out, err := playctl("app", "test")
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(out).To(ContainSubstring("smoke test passed"))
		}).Should(Succeed())
	})

	It("answers the smoke test through the ingress", func() {
		out, err := playctl("app", "test", "--via-ingress")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("smoke test passed"))
	})

	It("reports a ready playground", func() {
		out, err := playctl("status", "-o", "json")
		Expect(err).NotTo(HaveOccurred())

		var report status.Report

		Expect(json.Unmarshal([]byte(out), &report)).To(Succeed())
		Expect(report.Cluster.Exists).To(BeTrue())
		Expect(report.Cluster.Nodes).To(HaveLen(2))
		Expect(report.Images.Tags).To(ContainElement("latest"))

		for _, workload := range report.Workloads {
			Expect(workload.Ready).To(BeTrue(), workload.Name)
		}
	})

	It("removes the application but keeps the cluster", func() {
		out, err := playctl("clean", "--force")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("application removed"))

		hosts, err := os.ReadFile(hostsFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(hosts)).NotTo(ContainSubstring("BEGIN playctl"))
	})

	It("tears the cluster down", func() {
		out, err := playctl("infra", "teardown", "--force")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("cluster deleted"))
	})
})
