package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"seriesapi/config"
	"seriesapi/repository"
	"seriesapi/services/catalog"
)

func main() {
	// 定义命令行参数
	var file string
	var dryRun bool
	flag.StringVar(&file, "file", "", "要导入的 YAML 目录文件")
	flag.BoolVar(&dryRun, "dry-run", false, "只解析文件，不写入数据库")
	flag.Parse()

	if file == "" {
		fmt.Println("请提供导入文件，例如: -file=catalog.yaml")
		os.Exit(1)
	}

	fh, err := os.Open(file)
	if err != nil {
		fmt.Printf("打开文件失败: %v\n", err)
		os.Exit(1)
	}
	defer fh.Close()

	data, err := catalog.Parse(fh)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("解析成功: %d 个平台, %d 个类型, %d 部剧集\n", len(data.Platforms), len(data.Genders), len(data.Series))
	if dryRun {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		fmt.Printf("连接数据库失败: %v\n", err)
		os.Exit(1)
	}

	stats, err := catalog.NewImporter(repository.New(db)).Import(context.Background(), data)
	if err != nil {
		fmt.Printf("导入失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("导入完成! 新建 平台:%d 类型:%d 剧集:%d 季:%d 单集:%d\n",
		stats.Platforms, stats.Genders, stats.Series, stats.Seasons, stats.Episodes)
}
