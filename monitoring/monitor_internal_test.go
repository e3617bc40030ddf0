package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cachesim/mem/cache"
)

func get(m *Monitor, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	m.router().ServeHTTP(rec, req)

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		m  *Monitor
		dm *cache.DirectMapped
	)

	BeforeEach(func() {
		m = NewMonitor()
		dm = cache.MakeBuilder().BuildDirectMapped("DM")
		m.RegisterCache(dm)
	})

	It("should fall back to a random port for reserved port numbers", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should list registered caches", func() {
		m.RegisterCache(cache.MakeBuilder().BuildSetAssociative("SA"))

		rec := get(m, "/api/list_components")

		var names []string
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"DM", "SA"}))
	})

	It("should report cache statistics", func() {
		dm.Write(0x0003, 0x11)
		dm.Read(0x0003)
		dm.Read(0x0103)

		rec := get(m, "/api/stats/DM")

		var rsp statsRsp
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Reads).To(Equal(uint64(2)))
		Expect(rsp.Writes).To(Equal(uint64(1)))
		Expect(rsp.Hits).To(Equal(uint64(2)))
		Expect(rsp.Misses).To(Equal(uint64(1)))
		Expect(rsp.HitRate).To(BeNumerically("~", 2.0/3.0, 1e-9))
	})

	It("should return 404 for unknown caches", func() {
		Expect(get(m, "/api/stats/L2").Code).To(Equal(http.StatusNotFound))
		Expect(get(m, "/api/component/L2").Code).To(Equal(http.StatusNotFound))
	})

	It("should serialize a cache", func() {
		rec := get(m, "/api/component/DM")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("trace", 10)
		bar.IncrementInProgress(4)
		bar.MoveInProgressToFinished(3)

		rec := get(m, "/api/progress")

		var bars []progressBarRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].ID).To(Equal(bar.ID))
		Expect(bars[0].Name).To(Equal("trace"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(3)))
		Expect(bars[0].InProgress).To(Equal(uint64(1)))

		m.CompleteProgressBar(bar)

		rec = get(m, "/api/progress")
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(BeEmpty())
	})

	It("should report resource usage", func() {
		rec := get(m, "/api/resource")

		var rsp resourceRsp
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve the dashboard", func() {
		rec := get(m, "/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})

	It("should serve over a real listener", func() {
		m.StartServer()
		Expect(m.URL()).To(HavePrefix("http://localhost:"))

		rsp, err := http.Get(m.URL() + "/api/list_components")
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(Equal(`["DM"]`))
	})
})
