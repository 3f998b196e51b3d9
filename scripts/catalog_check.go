// 手动检查目录种子文件
//
// 启动时会自动完成同样的校验；此脚本用于在提交新的目录文件前确认没有悬空的技能引用。
//
// 用法: go run scripts/catalog_check.go [-strict] [catalog.yaml]

package main

import (
	"career_advisor_backend/internal/catalog"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	strict := flag.Bool("strict", false, "存在悬空引用时返回非零退出码")
	flag.Parse()

	path := flag.Arg(0)
	c, err := catalog.Load(path)
	if err != nil {
		log.Fatalf("加载目录失败: %v", err)
	}

	fmt.Printf("职业 %d 个，技能 %d 个\n", len(c.Careers), len(c.Skills))

	refs := c.Dangling()
	for _, r := range refs {
		fmt.Printf("  缺少技能记录: %s\n", r)
	}
	if len(refs) == 0 {
		fmt.Println("全部技能引用均已解析")
		return
	}
	if *strict {
		os.Exit(1)
	}
}
